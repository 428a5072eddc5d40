package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/store"
)

// fakeSender records outbound messages.
type fakeSender struct {
	msgs []struct{ recipient, text string }
}

func (f *fakeSender) Send(recipient, text string) error {
	f.msgs = append(f.msgs, struct{ recipient, text string }{recipient, text})
	return nil
}

func (f *fakeSender) last() string {
	if len(f.msgs) == 0 {
		return ""
	}
	return f.msgs[len(f.msgs)-1].text
}

// fakeJobs records scheduler calls without any firing machinery.
type fakeJobs struct {
	scheduled []domain.ScheduledJob
	cancelled []string
}

func (f *fakeJobs) Schedule(_ context.Context, job domain.ScheduledJob) error {
	f.scheduled = append(f.scheduled, job)
	return nil
}

func (f *fakeJobs) Cancel(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

// fixedNow is Monday 2025-06-02 08:00 Kolkata.
func fixedNow(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return time.Date(2025, time.June, 2, 8, 0, 0, 0, loc)
}

func newTestAssistant(t *testing.T) (*Assistant, *store.MemoryRepo, *fakeSender, *fakeJobs) {
	t.Helper()
	repo := store.NewMemory()
	sender := &fakeSender{}
	jobs := &fakeJobs{}

	a := New(repo, sender, zap.NewNop(), "Asia/Kolkata", domain.LocaleEN)
	a.SetJobs(jobs)
	now := fixedNow(t)
	a.now = func() time.Time { return now }
	return a, repo, sender, jobs
}

func TestHandleMessage_CreatesProfileAndReminder(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "Remind me tomorrow at 9 AM to submit report")

	p, err := repo.GetProfile(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAssistantName, p.AssistantName)
	assert.Equal(t, "Asia/Kolkata", p.TZ)

	require.Len(t, jobs.scheduled, 1)
	job := jobs.scheduled[0]
	assert.Equal(t, domain.JobReminder, job.Kind)
	assert.Equal(t, domain.ReminderJobID("tg:1", job.FireAt), job.ID)

	pending, err := repo.ListPendingReminders(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "submit report", pending[0].Task)

	assert.Contains(t, sender.last(), "Reminder set: submit report")
}

func TestHandleMessage_ReminderWithoutTimePrompts(t *testing.T) {
	a, _, sender, jobs := newTestAssistant(t)

	a.HandleMessage(context.Background(), "tg:1", "remind me to call mom")

	assert.Empty(t, jobs.scheduled)
	assert.Contains(t, sender.last(), "include a time")
}

// The same reminder submitted twice lands on the same job id, so the
// scheduler's upsert collapses it into one dispatch.
func TestHandleMessage_DuplicateReminderSharesJobID(t *testing.T) {
	a, _, _, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "remind me at 5 pm to stretch")
	a.HandleMessage(ctx, "tg:1", "remind me at 5 pm to stretch")

	require.Len(t, jobs.scheduled, 2)
	assert.Equal(t, jobs.scheduled[0].ID, jobs.scheduled[1].ID)
}

func TestHandleMessage_CompletionByTaskSubstring(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "remind me at 5 pm to call mom")
	a.HandleMessage(ctx, "tg:1", "remind me at 6 pm to water plants")

	a.HandleMessage(ctx, "tg:1", "done with call mom")

	assert.Contains(t, sender.last(), "Marked complete: call mom")

	pending, err := repo.ListPendingReminders(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "water plants", pending[0].Task)

	require.Len(t, jobs.cancelled, 1)
	assert.Contains(t, jobs.cancelled[0], "reminder:tg:1:")
}

func TestHandleMessage_BareAckHitsMostRecent(t *testing.T) {
	a, repo, sender, _ := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "remind me at 5 pm to call mom")

	// The second reminder is created later and becomes the bare-ack target.
	later := fixedNow(t).Add(time.Minute)
	a.now = func() time.Time { return later }
	a.HandleMessage(ctx, "tg:1", "remind me at 6 pm to water plants")

	a.HandleMessage(ctx, "tg:1", "done")

	assert.Contains(t, sender.last(), "Marked complete: water plants")

	pending, err := repo.ListPendingReminders(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "call mom", pending[0].Task)
}

func TestHandleMessage_AckWithNothingPending(t *testing.T) {
	a, _, sender, _ := newTestAssistant(t)

	a.HandleMessage(context.Background(), "tg:1", "done")

	assert.Contains(t, sender.last(), "Nothing is pending")
}

func TestHandleMessage_GoalSchedulesCheckins(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "My goal today is to write my essay")

	g, err := repo.LatestOpenGoal(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "write my essay", g.Text)
	assert.Equal(t, domain.Cadence("write my essay"), g.Offsets)

	require.Len(t, jobs.scheduled, domain.CheckinCount)
	for k, job := range jobs.scheduled {
		assert.Equal(t, domain.JobGoalCheckin, job.Kind)
		assert.Equal(t, g.ID, job.Ref)
		assert.Equal(t, k+1, job.Seq)
		assert.True(t, job.FireAt.Equal(a.now().UTC().Add(g.Offsets[k])))
	}

	assert.Contains(t, sender.last(), "Goal set: write my essay")
}

func TestHandleMessage_GoalCompletionCancelsCheckins(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "My goal today is to write my essay")
	g, err := repo.LatestOpenGoal(ctx, "tg:1")
	require.NoError(t, err)

	a.HandleMessage(ctx, "tg:1", "all done")

	assert.Contains(t, sender.last(), "Goal completed")
	require.Len(t, jobs.cancelled, domain.CheckinCount)
	for k, id := range jobs.cancelled {
		assert.Equal(t, domain.CheckinJobID("tg:1", g.ID, k+1), id)
	}

	_, err = repo.LatestOpenGoal(ctx, "tg:1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDispatch_ReminderPing(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "remind me at 5 pm to call mom")
	require.Len(t, jobs.scheduled, 1)
	sender.msgs = nil

	require.NoError(t, a.Dispatch(ctx, jobs.scheduled[0]))

	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.last(), "call mom")
	assert.Contains(t, sender.last(), "Reminder from Assistant")

	// An acked reminder stays quiet at fire time.
	pending, err := repo.ListPendingReminders(ctx, "tg:1")
	require.NoError(t, err)
	require.NoError(t, repo.MarkReminderDone(ctx, pending[0].ID))
	sender.msgs = nil
	require.NoError(t, a.Dispatch(ctx, jobs.scheduled[0]))
	assert.Empty(t, sender.msgs)
}

func TestDispatch_CheckinSuppressedAfterCompletion(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "My goal today is to write my essay")
	g, err := repo.LatestOpenGoal(ctx, "tg:1")
	require.NoError(t, err)
	checkin := jobs.scheduled[0]
	sender.msgs = nil

	require.NoError(t, a.Dispatch(ctx, checkin))
	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.last(), "write my essay")
	assert.Contains(t, sender.last(), "#1")

	// Completed between scheduling and firing: the flag wins the race.
	require.NoError(t, repo.MarkGoalDone(ctx, g.ID))
	sender.msgs = nil
	require.NoError(t, a.Dispatch(ctx, jobs.scheduled[1]))
	assert.Empty(t, sender.msgs)
}

func TestHandleMessage_SetNameAndGreeting(t *testing.T) {
	a, _, sender, _ := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "Your name is jarvis")
	assert.Contains(t, sender.last(), "I'm now Jarvis")

	a.HandleMessage(ctx, "tg:1", "hello")
	assert.Contains(t, sender.last(), "I'm Jarvis")
}

func TestHandleMessage_Schedule(t *testing.T) {
	a, _, sender, _ := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "what's my schedule")
	assert.Contains(t, sender.last(), "No pending reminders")

	a.HandleMessage(ctx, "tg:1", "remind me at 6 pm to water plants")
	a.HandleMessage(ctx, "tg:1", "remind me at 9 am to jog")

	a.HandleMessage(ctx, "tg:1", "what's my schedule")
	last := sender.last()
	assert.Contains(t, last, "Your pending reminders")
	// Soonest first regardless of creation order.
	assert.Less(t, strings.Index(last, "jog"), strings.Index(last, "water plants"))
}

func TestHandleMessage_Recipe(t *testing.T) {
	a, _, sender, _ := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "recipe for paneer")
	assert.Contains(t, strings.ToLower(sender.last()), "paneer")

	a.HandleMessage(ctx, "tg:1", "recipe for sushi")
	assert.Contains(t, sender.last(), "Available recipes")
}

func TestHandleMessage_BriefingArmAndDispatch(t *testing.T) {
	a, _, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "morning briefing")
	assert.Contains(t, sender.last(), "Say 'Enable morning briefing'")
	assert.Empty(t, jobs.scheduled)

	a.HandleMessage(ctx, "tg:1", "enable morning briefing")
	assert.Contains(t, sender.last(), "Morning briefing enabled")

	require.Len(t, jobs.scheduled, 1)
	job := jobs.scheduled[0]
	assert.Equal(t, domain.JobBriefing, job.Kind)
	assert.Equal(t, domain.BriefingJobID("tg:1"), job.ID)

	local := job.FireAt.In(fixedNow(t).Location())
	assert.Equal(t, briefingHour, local.Hour())
	assert.Equal(t, fixedNow(t).Day()+1, local.Day())

	// Firing sends the briefing and re-arms the same job id.
	sender.msgs = nil
	require.NoError(t, a.Dispatch(ctx, job))
	require.NotEmpty(t, sender.msgs)
	assert.Contains(t, sender.msgs[0].text, "Good morning")
	require.Len(t, jobs.scheduled, 2)
	assert.Equal(t, job.ID, jobs.scheduled[1].ID)
}

// A Hindi message on an English-default deployment must switch the
// conversation to Hindi, persistently, and back again on English input.
func TestHandleMessage_LanguageFollowsMessageScript(t *testing.T) {
	a, repo, sender, jobs := newTestAssistant(t)
	ctx := context.Background()

	a.HandleMessage(ctx, "tg:1", "5 बजे दवा याद दिलाना")

	p, err := repo.GetProfile(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleHI, p.Language)
	require.Len(t, jobs.scheduled, 1, "Hindi reminder must be classified against the Hindi table")
	assert.Contains(t, sender.last(), "रिमाइंडर सेट")

	a.HandleMessage(ctx, "tg:1", "what's my schedule")

	p, err = repo.GetProfile(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEN, p.Language)
	assert.Contains(t, sender.last(), "Your pending reminders")
}

func TestExtractGoalText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My goal today is to write my essay", "write my essay"},
		{"my goals are finish the report", "finish the report"},
		{"today i want to read chapter 4", "read chapter 4"},
		{"ship the release", "ship the release"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractGoalText(tc.in, domain.LocaleEN), tc.in)
	}
}
