package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/store"
)

// Sender is the outbound messaging gateway. The assistant never blocks on
// delivery beyond this call; failures are logged, not retried.
type Sender interface {
	Send(recipient, text string) error
}

// Jobs is the slice of the job scheduler the assistant needs.
type Jobs interface {
	Schedule(ctx context.Context, job domain.ScheduledJob) error
	Cancel(ctx context.Context, id string) error
}

// Assistant routes inbound messages to the reminder and goal lifecycles
// and formats localized replies. It also dispatches fired jobs back out,
// so it is wired to the scheduler in both directions.
type Assistant struct {
	repo       store.Repo
	jobs       Jobs
	sender     Sender
	log        *zap.Logger
	defaultTZ  string
	defaultLoc domain.Locale

	// now is injected for deterministic tests.
	now func() time.Time
}

// New creates an Assistant. Call SetJobs and SetSender before handling
// messages; both collaborators are attached after construction because the
// scheduler and the transport each dispatch back into the assistant.
func New(repo store.Repo, sender Sender, log *zap.Logger, defaultTZ string, defaultLoc domain.Locale) *Assistant {
	return &Assistant{
		repo:       repo,
		sender:     sender,
		log:        log,
		defaultTZ:  defaultTZ,
		defaultLoc: defaultLoc,
		now:        time.Now,
	}
}

// SetJobs attaches the job scheduler.
func (a *Assistant) SetJobs(j Jobs) { a.jobs = j }

// SetSender attaches the outbound gateway.
func (a *Assistant) SetSender(s Sender) { a.sender = s }

// HandleMessage processes one inbound (recipient, text) pair synchronously
// and sends the reply. It never awaits a scheduled job.
func (a *Assistant) HandleMessage(ctx context.Context, recipient, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	p, err := a.ensureProfile(ctx, recipient)
	if err != nil {
		a.log.Error("ensure profile failed", zap.Error(err), zap.String("recipient", recipient))
		return
	}

	// The conversation language follows the script of each message, as a
	// Hindi speaker on an English-default deployment would expect.
	if loc := domain.DetectLocale(text, p.Language); loc != p.Language {
		p.Language = loc
		if err := a.repo.UpsertProfile(ctx, p); err != nil {
			a.log.Warn("save language failed", zap.Error(err), zap.String("recipient", recipient))
		}
	}
	t := textsFor(p.Language)

	intent := domain.Classify(text, p.Language)
	a.log.Debug("inbound message",
		zap.String("recipient", recipient),
		zap.String("intent", string(intent)),
	)

	var reply string
	switch intent {
	case domain.IntentSetName:
		reply = a.handleSetName(ctx, p, text)
	case domain.IntentReminder:
		reply = a.createReminder(ctx, p, text)
	case domain.IntentGoal:
		reply = a.createGoal(ctx, p, text)
	case domain.IntentCompletion:
		reply = a.handleCompletion(ctx, p, text)
	case domain.IntentRecipe:
		if r, ok := findRecipe(text, p.Language); ok {
			reply = r
		} else {
			reply = t.recipeNotFound
		}
	case domain.IntentBriefing:
		reply = a.handleBriefing(ctx, p, text)
	case domain.IntentSchedule:
		reply = a.handleSchedule(ctx, p)
	case domain.IntentGreeting:
		if p.AssistantName != domain.DefaultAssistantName {
			reply = fmt.Sprintf(t.introduction, p.AssistantName)
		} else {
			reply = fmt.Sprintf(t.welcome, p.AssistantName)
		}
	default:
		// Help and Unknown both land on the help text.
		reply = t.help
	}

	a.send(recipient, reply)
}

// ensureProfile loads the recipient's profile, creating it on first
// contact; last-seen is touched on every message.
func (a *Assistant) ensureProfile(ctx context.Context, recipient string) (*domain.Profile, error) {
	now := a.now()
	p, err := a.repo.GetProfile(ctx, recipient)
	if err == nil {
		if err := a.repo.TouchProfile(ctx, recipient, now); err != nil {
			a.log.Warn("touch profile failed", zap.Error(err))
		}
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	p = domain.NewProfile(recipient, a.defaultTZ, a.defaultLoc, now)
	if err := a.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// send chunks the reply and pushes it through the gateway. Delivery
// failures are logged and swallowed; nothing is rolled back.
func (a *Assistant) send(recipient, text string) {
	for _, chunk := range splitReply(text, replyLimit) {
		if err := a.sender.Send(recipient, chunk); err != nil {
			a.log.Error("send failed", zap.Error(err), zap.String("recipient", recipient))
		}
	}
}

// --- Completion ---

func (a *Assistant) handleCompletion(ctx context.Context, p *domain.Profile, text string) string {
	if reply, ok := a.tryCompleteReminder(ctx, p, text); ok {
		return reply
	}
	if reply, ok := a.tryCompleteGoal(ctx, p); ok {
		return reply
	}
	return textsFor(p.Language).nothingPending
}

// --- Assistant rename ---

var namePatterns = map[domain.Locale][]*regexp.Regexp{
	domain.LocaleEN: {
		regexp.MustCompile(`(?i)your name is (\p{L}+)`),
		regexp.MustCompile(`(?i)i'?ll call you (\p{L}+)`),
		regexp.MustCompile(`(?i)call you (\p{L}+)`),
		regexp.MustCompile(`(?i)name you (\p{L}+)`),
	},
	domain.LocaleHI: {
		regexp.MustCompile(`तुम्हारा नाम (\S+)`),
		regexp.MustCompile(`आपका नाम (\S+)`),
	},
}

func (a *Assistant) handleSetName(ctx context.Context, p *domain.Profile, text string) string {
	t := textsFor(p.Language)
	for _, re := range namePatterns[p.Language] {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := capitalize(m[1])
		p.AssistantName = name
		if err := a.repo.UpsertProfile(ctx, p); err != nil {
			a.log.Error("save profile failed", zap.Error(err))
			return t.help
		}
		return fmt.Sprintf(t.nameSet, name)
	}
	return t.namePrompt
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// --- Schedule lookup ---

func (a *Assistant) handleSchedule(ctx context.Context, p *domain.Profile) string {
	t := textsFor(p.Language)
	pending, err := a.repo.ListPendingReminders(ctx, p.Recipient)
	if err != nil {
		a.log.Error("list reminders failed", zap.Error(err))
		return t.scheduleEmpty
	}
	quote := t.quotes[a.now().Day()%len(t.quotes)]
	if len(pending) == 0 {
		return t.scheduleEmpty + "\n\n💭 " + quote
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].FireAt.Before(pending[j].FireAt) })
	loc := p.Location()
	lines := []string{t.scheduleHeader}
	for _, r := range pending {
		lines = append(lines, fmt.Sprintf(t.scheduleLine, r.FireAt.In(loc).Format("Mon 03:04 PM"), r.Task))
	}
	lines = append(lines, "", "💭 "+quote)
	return strings.Join(lines, "\n")
}

// --- Morning briefing ---

var briefingEnableWords = map[domain.Locale][]string{
	domain.LocaleEN: {"enable", "start", "yes"},
	domain.LocaleHI: {"चालू", "शुरू", "हां"},
}

const briefingHour = 7

func (a *Assistant) handleBriefing(ctx context.Context, p *domain.Profile, text string) string {
	t := textsFor(p.Language)
	low := strings.ToLower(text)
	enabled := false
	for _, w := range briefingEnableWords[p.Language] {
		if strings.Contains(low, w) {
			enabled = true
			break
		}
	}
	if !enabled {
		return t.briefingOffer
	}

	fireAt := nextBriefing(a.now().In(p.Location()))
	err := a.jobs.Schedule(ctx, domain.ScheduledJob{
		ID:        domain.BriefingJobID(p.Recipient),
		Recipient: p.Recipient,
		Kind:      domain.JobBriefing,
		FireAt:    fireAt.UTC(),
	})
	if err != nil {
		a.log.Error("schedule briefing failed", zap.Error(err))
		return t.help
	}
	return t.briefingArmed
}

// nextBriefing returns 07:00 local on the day after now.
func nextBriefing(nowLocal time.Time) time.Time {
	d := nowLocal.AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), briefingHour, 0, 0, 0, nowLocal.Location())
}

func (a *Assistant) dispatchBriefing(ctx context.Context, job domain.ScheduledJob) error {
	p, err := a.repo.GetProfile(ctx, job.Recipient)
	if err != nil {
		return fmt.Errorf("briefing profile: %w", err)
	}
	t := textsFor(p.Language)

	body := fmt.Sprintf(t.briefingTitle, p.AssistantName) + "\n\n" + a.handleSchedule(ctx, p)
	a.send(p.Recipient, body)

	// Re-arm for the next morning; same key, so this is an upsert.
	return a.jobs.Schedule(ctx, domain.ScheduledJob{
		ID:        job.ID,
		Recipient: job.Recipient,
		Kind:      domain.JobBriefing,
		FireAt:    nextBriefing(a.now().In(p.Location())).UTC(),
	})
}

// --- Job dispatch ---

// Dispatch routes a fired job to its lifecycle handler. It implements the
// scheduler's Dispatcher; errors are logged by the scheduler and dropped.
func (a *Assistant) Dispatch(ctx context.Context, job domain.ScheduledJob) error {
	switch job.Kind {
	case domain.JobReminder:
		return a.dispatchReminder(ctx, job)
	case domain.JobGoalCheckin:
		return a.dispatchCheckin(ctx, job)
	case domain.JobBriefing:
		return a.dispatchBriefing(ctx, job)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
