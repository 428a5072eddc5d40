package store

import (
	"context"
	"errors"
	"time"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// ErrNotFound is returned when a keyed lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// Repo defines storage for profiles, reminders, goals and scheduled jobs.
// Only get-by-key, upsert and per-recipient scans; no cross-record
// transactions are assumed.
type Repo interface {
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	GetProfile(ctx context.Context, recipient string) (*domain.Profile, error)
	TouchProfile(ctx context.Context, recipient string, at time.Time) error

	SaveReminder(ctx context.Context, r *domain.Reminder) error
	GetReminder(ctx context.Context, id string) (*domain.Reminder, error)
	// ListPendingReminders returns a recipient's unacknowledged reminders,
	// most recently created first.
	ListPendingReminders(ctx context.Context, recipient string) ([]domain.Reminder, error)
	MarkReminderDone(ctx context.Context, id string) error

	SaveGoal(ctx context.Context, g *domain.Goal) error
	GetGoal(ctx context.Context, id string) (*domain.Goal, error)
	// LatestOpenGoal returns the most recently created uncompleted goal.
	LatestOpenGoal(ctx context.Context, recipient string) (*domain.Goal, error)
	MarkGoalDone(ctx context.Context, id string) error

	// UpsertJob registers a job keyed by id. A pending job with the same id
	// is replaced wholesale; this is the scheduler's deduplication.
	UpsertJob(ctx context.Context, j *domain.ScheduledJob) error
	CancelJob(ctx context.Context, id string) error
	// ListDueJobs returns pending jobs with fire_at <= now, soonest first.
	ListDueJobs(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledJob, error)
	// MarkJobFired claims a pending job. False means another claimer won
	// or the job was cancelled meanwhile.
	MarkJobFired(ctx context.Context, id string) (bool, error)

	Close() error
}
