package domain

import "strings"

// Intent is the symbolic action category a message is routed to.
type Intent string

const (
	IntentUnknown    Intent = "unknown"
	IntentSetName    Intent = "set_name"
	IntentReminder   Intent = "reminder"
	IntentGoal       Intent = "goal"
	IntentCompletion Intent = "completion"
	IntentRecipe     Intent = "recipe"
	IntentBriefing   Intent = "briefing"
	IntentSchedule   Intent = "schedule"
	IntentGreeting   Intent = "greeting"
	IntentHelp       Intent = "help"
)

// intentTable is scanned in declaration order; the first intent with any
// trigger contained in the message wins, even if a later intent's trigger
// is also present. This ordering is a contract: changing it changes routing.
var intentTable = []struct {
	kind     Intent
	triggers map[Locale][]string
}{
	{IntentSetName, map[Locale][]string{
		LocaleEN: {"your name is", "call you", "name you"},
		LocaleHI: {"तुम्हारा नाम", "आपका नाम"},
	}},
	{IntentReminder, map[Locale][]string{
		LocaleEN: {"remind", "alarm"},
		LocaleHI: {"याद", "रिमाइंडर", "अलार्म"},
	}},
	{IntentGoal, map[Locale][]string{
		LocaleEN: {"my goal", "today i want to", "i want to accomplish"},
		LocaleHI: {"मेरा लक्ष्य", "मेरे लक्ष्य", "लक्ष्य"},
	}},
	{IntentCompletion, map[Locale][]string{
		LocaleEN: {"all done", "done", "completed", "finished"},
		LocaleHI: {"हो गया", "पूरा हुआ", "पूरा कर"},
	}},
	{IntentRecipe, map[Locale][]string{
		LocaleEN: {"recipe", "cook", "dish"},
		LocaleHI: {"रेसिपी", "खाना", "व्यंजन", "बनाना"},
	}},
	{IntentBriefing, map[Locale][]string{
		LocaleEN: {"morning briefing", "briefing"},
		LocaleHI: {"ब्रीफिंग", "सुबह का संदेश"},
	}},
	{IntentSchedule, map[Locale][]string{
		LocaleEN: {"schedule", "calendar", "appointments", "my day"},
		LocaleHI: {"कार्यक्रम", "शेड्यूल", "कैलेंडर"},
	}},
	{IntentGreeting, map[Locale][]string{
		LocaleEN: {"hello", "hey", "namaste", "good morning"},
		LocaleHI: {"नमस्ते", "हेलो", "हाय", "सुप्रभात"},
	}},
	{IntentHelp, map[Locale][]string{
		LocaleEN: {"help", "what can you do"},
		LocaleHI: {"मदद", "सहायता"},
	}},
}

// Classify returns the first intent whose trigger is a case-insensitive
// substring of text, or IntentUnknown. No scoring, no longest-match
// preference; callers map IntentUnknown to help text.
func Classify(text string, loc Locale) Intent {
	low := strings.ToLower(text)
	for _, entry := range intentTable {
		for _, trig := range entry.triggers[loc] {
			if strings.Contains(low, trig) {
				return entry.kind
			}
		}
	}
	return IntentUnknown
}
