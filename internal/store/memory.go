package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// MemoryRepo is the volatile tier: everything, including pending jobs, is
// lost on restart. Useful for tests and throwaway deployments; never for
// anything that must survive the process.
type MemoryRepo struct {
	mu        sync.RWMutex
	profiles  map[string]domain.Profile
	reminders map[string]domain.Reminder
	goals     map[string]domain.Goal
	jobs      map[string]domain.ScheduledJob
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		profiles:  make(map[string]domain.Profile),
		reminders: make(map[string]domain.Reminder),
		goals:     make(map[string]domain.Goal),
		jobs:      make(map[string]domain.ScheduledJob),
	}
}

func (m *MemoryRepo) Close() error { return nil }

func (m *MemoryRepo) UpsertProfile(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Recipient] = *p
	return nil
}

func (m *MemoryRepo) GetProfile(_ context.Context, recipient string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[recipient]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryRepo) TouchProfile(_ context.Context, recipient string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[recipient]; ok {
		p.LastSeenAt = at.UTC()
		m.profiles[recipient] = p
	}
	return nil
}

func (m *MemoryRepo) SaveReminder(_ context.Context, r *domain.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[r.ID] = *r
	return nil
}

func (m *MemoryRepo) GetReminder(_ context.Context, id string) (*domain.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reminders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryRepo) ListPendingReminders(_ context.Context, recipient string) ([]domain.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []domain.Reminder
	for _, r := range m.reminders {
		if r.Recipient == recipient && !r.Done {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (m *MemoryRepo) MarkReminderDone(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[id]; ok {
		r.Done = true
		m.reminders[id] = r
	}
	return nil
}

func (m *MemoryRepo) SaveGoal(_ context.Context, g *domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = *g
	return nil
}

func (m *MemoryRepo) GetGoal(_ context.Context, id string) (*domain.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (m *MemoryRepo) LatestOpenGoal(_ context.Context, recipient string) (*domain.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Goal
	for _, g := range m.goals {
		if g.Recipient != recipient || g.Done {
			continue
		}
		g := g
		if latest == nil || g.CreatedAt.After(latest.CreatedAt) {
			latest = &g
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *MemoryRepo) MarkGoalDone(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.goals[id]; ok {
		g.Done = true
		m.goals[id] = g
	}
	return nil
}

func (m *MemoryRepo) UpsertJob(_ context.Context, j *domain.ScheduledJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func (m *MemoryRepo) CancelJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok && j.Status == domain.JobPending {
		j.Status = domain.JobCancelled
		m.jobs[id] = j
	}
	return nil
}

func (m *MemoryRepo) ListDueJobs(_ context.Context, now time.Time, limit int) ([]domain.ScheduledJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []domain.ScheduledJob
	for _, j := range m.jobs {
		if j.Status == domain.JobPending && !j.FireAt.After(now) {
			res = append(res, j)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].FireAt.Before(res[j].FireAt) })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *MemoryRepo) MarkJobFired(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok || j.Status != domain.JobPending {
		return false, nil
	}
	j.Status = domain.JobFired
	m.jobs[id] = j
	return true, nil
}
