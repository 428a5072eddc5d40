package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// The memory repo must mirror the SQLite semantics the assistant and
// scheduler rely on; these cover the ones with ordering or claim rules.

func TestMemory_PendingRemindersOrder(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, repo.SaveReminder(ctx, &domain.Reminder{
			ID:        id,
			Recipient: "tg:1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.MarkReminderDone(ctx, "r3"))

	pending, err := repo.ListPendingReminders(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "r2", pending[0].ID)
	assert.Equal(t, "r1", pending[1].ID)
}

func TestMemory_LatestOpenGoal(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, repo.SaveGoal(ctx, &domain.Goal{ID: "g1", Recipient: "tg:1", CreatedAt: base}))
	require.NoError(t, repo.SaveGoal(ctx, &domain.Goal{ID: "g2", Recipient: "tg:1", CreatedAt: base.Add(time.Minute)}))

	g, err := repo.LatestOpenGoal(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "g2", g.ID)

	require.NoError(t, repo.MarkGoalDone(ctx, "g2"))
	g, err = repo.LatestOpenGoal(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "g1", g.ID)

	_, err = repo.LatestOpenGoal(ctx, "tg:2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_JobClaimAndCancel(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.UpsertJob(ctx, &domain.ScheduledJob{
		ID:     "j1",
		Kind:   domain.JobReminder,
		FireAt: now.Add(-time.Second),
		Status: domain.JobPending,
	}))

	claimed, err := repo.MarkJobFired(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.MarkJobFired(ctx, "j1")
	require.NoError(t, err)
	assert.False(t, claimed)

	// Cancel after firing must not resurrect the job.
	require.NoError(t, repo.CancelJob(ctx, "j1"))
	due, err := repo.ListDueJobs(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}
