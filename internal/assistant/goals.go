package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/store"
)

// goalLeadPhrases are stripped from the front of a goal message, longest
// first, to isolate the goal text.
var goalLeadPhrases = map[domain.Locale][]string{
	domain.LocaleEN: {
		"my goals today are", "my goal today is", "my goals are",
		"my goal is", "today i want to", "i want to accomplish", "my goal",
	},
	domain.LocaleHI: {
		"आज मेरा लक्ष्य", "मेरा लक्ष्य", "मेरे लक्ष्य",
	},
}

var goalTrailWords = map[domain.Locale][]string{
	domain.LocaleEN: {"is", "are", "to"},
	domain.LocaleHI: {"है", "हैं"},
}

func extractGoalText(text string, loc domain.Locale) string {
	low := strings.ToLower(text)
	for _, phrase := range goalLeadPhrases[loc] {
		i := strings.Index(low, phrase)
		if i < 0 {
			continue
		}
		rest := strings.TrimSpace(text[i+len(phrase):])
		// Drop a leftover linking word ("is", "to") at the front and a
		// trailing one for Hindi word order.
		for _, w := range goalTrailWords[loc] {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, w+" "))
			rest = strings.TrimSpace(strings.TrimSuffix(rest, " "+w))
		}
		return rest
	}
	return strings.TrimSpace(text)
}

// createGoal stores the goal and registers one check-in job per cadence
// offset. Job ids carry the ordinal so the three check-ins never collide
// with each other.
func (a *Assistant) createGoal(ctx context.Context, p *domain.Profile, text string) string {
	t := textsFor(p.Language)

	goalText := extractGoalText(text, p.Language)
	if goalText == "" {
		return t.goalPrompt
	}

	now := a.now().UTC()
	g := &domain.Goal{
		ID:        uuid.NewString(),
		Recipient: p.Recipient,
		Text:      goalText,
		Offsets:   domain.Cadence(goalText),
		CreatedAt: now,
	}
	if err := a.repo.SaveGoal(ctx, g); err != nil {
		a.log.Error("save goal failed", zap.Error(err))
		return t.goalPrompt
	}

	loc := p.Location()
	var times []string
	for k, off := range g.Offsets {
		fireAt := now.Add(off)
		err := a.jobs.Schedule(ctx, domain.ScheduledJob{
			ID:        domain.CheckinJobID(p.Recipient, g.ID, k+1),
			Recipient: p.Recipient,
			Kind:      domain.JobGoalCheckin,
			Ref:       g.ID,
			Seq:       k + 1,
			FireAt:    fireAt,
		})
		if err != nil {
			a.log.Error("schedule check-in failed", zap.Error(err), zap.Int("seq", k+1))
		}
		times = append(times, "• "+fireAt.In(loc).Format("03:04 PM"))
	}
	return fmt.Sprintf(t.goalSet, g.Text, strings.Join(times, "\n"))
}

// tryCompleteGoal marks the most recent open goal done and cancels its
// pending check-ins. A check-in job that already slipped past cancellation
// is still suppressed at dispatch time by the completed-flag guard.
func (a *Assistant) tryCompleteGoal(ctx context.Context, p *domain.Profile) (string, bool) {
	g, err := a.repo.LatestOpenGoal(ctx, p.Recipient)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Error("load goal failed", zap.Error(err))
		}
		return "", false
	}
	if err := a.repo.MarkGoalDone(ctx, g.ID); err != nil {
		a.log.Error("mark goal done failed", zap.Error(err))
		return "", false
	}
	for k := 1; k <= domain.CheckinCount; k++ {
		id := domain.CheckinJobID(p.Recipient, g.ID, k)
		if err := a.jobs.Cancel(ctx, id); err != nil {
			a.log.Warn("cancel check-in failed", zap.Error(err), zap.String("job", id))
		}
	}
	return textsFor(p.Language).goalComplete, true
}

// dispatchCheckin sends the k-th check-in unless the goal was completed
// meanwhile. The completed check is a fresh read at fire time, so an early
// "all done" wins the race against an in-flight check-in.
func (a *Assistant) dispatchCheckin(ctx context.Context, job domain.ScheduledJob) error {
	g, err := a.repo.GetGoal(ctx, job.Ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load goal: %w", err)
	}
	if g.Done {
		a.log.Debug("check-in suppressed, goal completed",
			zap.String("goal", g.ID), zap.Int("seq", job.Seq))
		return nil
	}

	p, err := a.repo.GetProfile(ctx, g.Recipient)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	t := textsFor(p.Language)

	// Phrasing rotates at random; the numbering and schedule stay fixed.
	variant := t.checkins[rand.Intn(len(t.checkins))]
	a.send(g.Recipient, fmt.Sprintf(variant, p.AssistantName, job.Seq, g.Text)+t.checkinTail)
	return nil
}
