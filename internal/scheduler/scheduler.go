package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rbhasinn/personal-assist/internal/domain"
	"github.com/rbhasinn/personal-assist/internal/store"
)

// Dispatcher consumes a due job. The scheduler knows nothing about what a
// job means; the payload is opaque to it.
type Dispatcher interface {
	Dispatch(ctx context.Context, job domain.ScheduledJob) error
}

// Scheduler dispatches registered jobs at or after their fire instant.
// Durability follows the backing repo: with SQLite, pending jobs survive a
// restart; with the in-memory repo they do not.
type Scheduler struct {
	repo     store.Repo
	log      *zap.Logger
	dispatch Dispatcher
	interval time.Duration
	batch    int
}

// New creates a Scheduler polling at the given interval.
func New(repo store.Repo, log *zap.Logger, d Dispatcher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Scheduler{
		repo:     repo,
		log:      log,
		dispatch: d,
		interval: interval,
		batch:    100,
	}
}

// Schedule registers a job. Registration is synchronous and returns
// immediately; firing happens later on the scheduler's goroutines.
// Re-registering a pending id replaces the prior registration, so the same
// logical event is dispatched at most once, at the latest fire instant.
func (s *Scheduler) Schedule(ctx context.Context, job domain.ScheduledJob) error {
	job.Status = domain.JobPending
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	return s.repo.UpsertJob(ctx, &job)
}

// Cancel drops a pending job by id. Fired or unknown ids are a no-op.
func (s *Scheduler) Cancel(ctx context.Context, id string) error {
	return s.repo.CancelJob(ctx, id)
}

// Run polls until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick claims due jobs and dispatches each on its own goroutine. Jobs for
// the same recipient may fire concurrently; there is no ordering between
// distinct ids. A failed dispatch is logged and discarded; nothing is
// retried or propagated to whoever registered the job.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC()

	jobs, err := s.repo.ListDueJobs(ctx, now, s.batch)
	if err != nil {
		s.log.Error("list due jobs failed", zap.Error(err))
		return
	}
	for _, job := range jobs {
		claimed, err := s.repo.MarkJobFired(ctx, job.ID)
		if err != nil {
			s.log.Error("claim job failed", zap.Error(err), zap.String("job", job.ID))
			continue
		}
		if !claimed {
			continue
		}
		job := job
		go func() {
			if err := s.dispatch.Dispatch(ctx, job); err != nil {
				s.log.Error("job dispatch failed",
					zap.Error(err),
					zap.String("job", job.ID),
					zap.String("kind", string(job.Kind)),
				)
			}
		}()
	}
}
