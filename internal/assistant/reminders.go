package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/store"
)

// createReminder parses a time expression out of the message and, on
// success, persists the reminder and registers exactly one job keyed by
// recipient + fire instant. Two reminders for the same recipient and
// second collapse into one dispatch by construction.
func (a *Assistant) createReminder(ctx context.Context, p *domain.Profile, text string) string {
	t := textsFor(p.Language)

	nowLocal := a.now().In(p.Location())
	when, err := domain.ParseWhen(text, nowLocal, p.Language)
	if err != nil {
		if errors.Is(err, domain.ErrNoTime) {
			return t.needTime
		}
		a.log.Error("parse time failed", zap.Error(err))
		return t.needTime
	}

	fireAt := when.At.UTC()
	rem := &domain.Reminder{
		ID:        domain.ReminderJobID(p.Recipient, fireAt),
		Recipient: p.Recipient,
		Task:      when.Task,
		FireAt:    fireAt,
		CreatedAt: a.now().UTC(),
	}
	if err := a.repo.SaveReminder(ctx, rem); err != nil {
		a.log.Error("save reminder failed", zap.Error(err))
		return t.needTime
	}
	err = a.jobs.Schedule(ctx, domain.ScheduledJob{
		ID:        rem.ID,
		Recipient: p.Recipient,
		Kind:      domain.JobReminder,
		Ref:       rem.ID,
		FireAt:    fireAt,
	})
	if err != nil {
		a.log.Error("schedule reminder failed", zap.Error(err), zap.String("job", rem.ID))
	}

	local := fireAt.In(p.Location())
	return fmt.Sprintf(t.reminderSet,
		rem.Task,
		local.Format("January 2, 2006"),
		local.Format("03:04 PM"),
	)
}

// tryCompleteReminder resolves an acknowledgement against the recipient's
// pending reminders. An ack that names a task is matched by substring
// containment against stored task text first; otherwise the most recently
// created pending reminder wins. Returns false when nothing is pending.
func (a *Assistant) tryCompleteReminder(ctx context.Context, p *domain.Profile, text string) (string, bool) {
	t := textsFor(p.Language)

	pending, err := a.repo.ListPendingReminders(ctx, p.Recipient)
	if err != nil {
		a.log.Error("list reminders failed", zap.Error(err))
		return "", false
	}
	if len(pending) == 0 {
		return "", false
	}

	low := strings.ToLower(text)
	target := pending[0] // most recently created
	for _, r := range pending {
		if strings.Contains(low, strings.ToLower(r.Task)) {
			target = r
			break
		}
	}

	if err := a.repo.MarkReminderDone(ctx, target.ID); err != nil {
		a.log.Error("mark reminder done failed", zap.Error(err))
		return "", false
	}
	// Suppress the ping if it has not fired yet.
	if err := a.jobs.Cancel(ctx, target.ID); err != nil {
		a.log.Warn("cancel reminder job failed", zap.Error(err), zap.String("job", target.ID))
	}
	return fmt.Sprintf(t.reminderAcked, target.Task), true
}

// dispatchReminder sends the reminder message when its job fires.
// Acknowledgement stays a separate manual step; nothing is auto-completed.
func (a *Assistant) dispatchReminder(ctx context.Context, job domain.ScheduledJob) error {
	rem, err := a.repo.GetReminder(ctx, job.Ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load reminder: %w", err)
	}
	if rem.Done {
		// Acked before the job fired; stay quiet.
		return nil
	}

	p, err := a.repo.GetProfile(ctx, rem.Recipient)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	t := textsFor(p.Language)
	a.send(rem.Recipient, fmt.Sprintf(t.reminderPing, p.AssistantName, rem.Task))
	return nil
}
