package assistant

import "github.com/rbhasinn/personal-assist/internal/domain"

// texts holds the reply templates for one locale. Placeholders are
// fmt.Sprintf verbs; argument order is fixed per template.
type texts struct {
	welcome      string // assistant name
	introduction string // assistant name
	help         string

	reminderSet    string // task, date, time
	needTime       string
	reminderPing   string // assistant name, task
	reminderAcked  string // task
	nothingPending string

	goalSet      string // goal text, three check-in times
	goalPrompt   string
	goalComplete string
	checkins     []string // rotating check-in variants: assistant name, ordinal, goal text
	checkinTail  string

	nameSet    string // name
	namePrompt string

	recipeNotFound string
	scheduleHeader string
	scheduleEmpty  string
	scheduleLine   string // time, task

	briefingOffer string
	briefingArmed string
	briefingTitle string // assistant name

	quotes []string
}

var textTables = map[domain.Locale]*texts{
	domain.LocaleEN: {
		welcome: "🙏 Hello! I'm %s, your personal assistant.\n\n" +
			"📅 Set reminders: \"Remind me to call mom at 5 PM\"\n" +
			"🎯 Track a goal: \"My goal today is to write my essay\"\n" +
			"🍳 Recipes: \"Recipe for paneer\"\n" +
			"📋 Your day: \"What's my schedule\"\n\n" +
			"✨ Want to name me? Say \"Your name is Jarvis\"",
		introduction: "👋 Hello! I'm %s, your personal assistant. How can I help you?",
		help: "📚 Here's what I can do:\n" +
			"• Remind me to [task] at [time]\n" +
			"• Remind me in 30 minutes to [task]\n" +
			"• My goal today is [goal]\n" +
			"• Done / all done\n" +
			"• Recipe for [dish]\n" +
			"• What's my schedule\n" +
			"• Enable morning briefing\n" +
			"• Your name is [name]",
		reminderSet:    "✅ Reminder set: %s\n📅 %s\n⏰ %s",
		needTime:       "Please include a time. Examples:\n• Remind me to exercise at 6 PM\n• Remind me in 30 minutes to take medicine",
		reminderPing:   "🔔 Reminder from %s\n\n📌 %s\n\nReply 'done' to mark it complete.",
		reminderAcked:  "✅ Marked complete: %s",
		nothingPending: "Nothing is pending right now. Set a reminder or a goal to get started!",
		goalSet:        "🎯 Goal set: %s\n\n📱 I'll check in at:\n%s\n\nReply 'all done' when you finish!",
		goalPrompt:     "Please tell me your goal. Example: 'My goal today is to finish the report'",
		goalComplete:   "🎉 Goal completed! Well done! 🌟",
		checkins: []string{
			"👋 %s checking in (#%d)!\n\nHow's it going with: %s?",
			"⏰ Check-in #%[2]d from %[1]s!\n\nAny progress on: %[3]s?",
			"💪 %s here, check-in #%d.\n\nStill on track with: %s?",
		},
		checkinTail:    "\n\nReply 'all done' when you finish!",
		nameSet:        "😊 Perfect! I'm now %s, your personal assistant. How can I help you today?",
		namePrompt:     "What name would you like to give me? Example: 'Your name is Raj'",
		recipeNotFound: "Available recipes: Paneer Butter Masala, Dal Tadka. Try 'Recipe for paneer'!",
		scheduleHeader: "📋 Your pending reminders:",
		scheduleEmpty:  "No pending reminders. Enjoy your day! 🌸",
		scheduleLine:   "• %s — %s",
		briefingOffer:  "Would you like a morning briefing every day at 7 AM? Say 'Enable morning briefing' to start!",
		briefingArmed:  "☀️ Morning briefing enabled! I'll message you tomorrow at 7 AM.",
		briefingTitle:  "🌅 Good morning! %s here.",
		quotes: []string{
			"What seems difficult today will become your strength tomorrow.",
			"Success always begins with small steps.",
			"Every new day is a fresh start.",
		},
	},
	domain.LocaleHI: {
		welcome: "🙏 नमस्ते! मैं %s हूं, आपका व्यक्तिगत सहायक।\n\n" +
			"📅 रिमाइंडर: \"5 बजे याद दिलाना\"\n" +
			"🎯 लक्ष्य: \"मेरा लक्ष्य निबंध लिखना है\"\n" +
			"🍳 रेसिपी: \"पनीर की रेसिपी\"\n\n" +
			"✨ मुझे नाम देना चाहते हैं? लिखें \"तुम्हारा नाम [नाम] है\"",
		introduction: "👋 नमस्ते! मैं %s हूं, आपका व्यक्तिगत सहायक। कैसे मदद कर सकता हूं?",
		help: "📚 मैं यह कर सकता हूं:\n" +
			"• [समय] पर [काम] याद दिलाना\n" +
			"• मेरा लक्ष्य [लक्ष्य] है\n" +
			"• हो गया\n" +
			"• [व्यंजन] की रेसिपी\n" +
			"• तुम्हारा नाम [नाम] है",
		reminderSet:    "✅ रिमाइंडर सेट: %s\n📅 %s\n⏰ %s",
		needTime:       "कृपया समय बताएं। उदाहरण: '6 बजे याद दिलाना' या '30 मिनट में याद दिलाना'",
		reminderPing:   "🔔 %s की ओर से रिमाइंडर\n\n📌 %s\n\n'हो गया' लिखकर पूरा करें।",
		reminderAcked:  "✅ पूरा हुआ: %s",
		nothingPending: "अभी कुछ भी लंबित नहीं है। रिमाइंडर या लक्ष्य सेट करें!",
		goalSet:        "🎯 लक्ष्य सेट: %s\n\n📱 मैं इन समयों पर पूछूंगा:\n%s\n\nपूरा होने पर 'हो गया' लिखें!",
		goalPrompt:     "कृपया अपना लक्ष्य बताएं। उदाहरण: 'मेरा लक्ष्य रिपोर्ट पूरी करना है'",
		goalComplete:   "🎉 लक्ष्य पूरा हुआ! शाबाश! 🌟",
		checkins: []string{
			"👋 %s पूछ रहा है (#%d)!\n\nकैसा चल रहा है: %s?",
			"⏰ %s की ओर से चेक-इन #%d!\n\nक्या प्रगति है: %s?",
		},
		checkinTail:    "\n\nपूरा होने पर 'हो गया' लिखें!",
		nameSet:        "😊 धन्यवाद! अब से मेरा नाम %s है।",
		namePrompt:     "आप मुझे क्या नाम देना चाहते हैं? उदाहरण: 'तुम्हारा नाम राज है'",
		recipeNotFound: "उपलब्ध रेसिपी: पनीर बटर मसाला, दाल तड़का।",
		scheduleHeader: "📋 आपके लंबित रिमाइंडर:",
		scheduleEmpty:  "आज कोई रिमाइंडर नहीं है। दिन अच्छा बिताएं! 🌸",
		scheduleLine:   "• %s — %s",
		briefingOffer:  "क्या आप रोज़ सुबह 7 बजे ब्रीफिंग चाहते हैं? 'ब्रीफिंग चालू करें' लिखें!",
		briefingArmed:  "☀️ सुबह की ब्रीफिंग चालू! कल सुबह 7 बजे संदेश मिलेगा।",
		briefingTitle:  "🌅 शुभ प्रभात! मैं %s हूं।",
		quotes: []string{
			"जो आज कठिन लग रहा है, वह कल आपकी ताकत बनेगा।",
			"सफलता की शुरुआत हमेशा छोटे कदमों से होती है।",
			"हर नया दिन एक नई शुरुआत है।",
		},
	},
}

func textsFor(loc domain.Locale) *texts {
	if t, ok := textTables[loc]; ok {
		return t
	}
	return textTables[domain.LocaleEN]
}
