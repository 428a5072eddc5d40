package domain

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of a scheduled job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobFired     JobStatus = "fired"
	JobCancelled JobStatus = "cancelled"
)

// JobKind tells the dispatcher which payload a job services. The scheduler
// itself treats jobs as opaque.
type JobKind string

const (
	JobReminder    JobKind = "reminder"
	JobGoalCheckin JobKind = "goal_checkin"
	JobBriefing    JobKind = "briefing"
)

// ScheduledJob is a one-shot keyed callback. ID is the deduplication key:
// at most one job per id is ever dispatched; re-registering a pending id
// replaces the earlier registration.
type ScheduledJob struct {
	ID        string
	Recipient string
	Kind      JobKind
	// Ref names the reminder or goal the job services.
	Ref string
	// Seq distinguishes the check-ins of one goal (1-based ordinal).
	Seq       int
	FireAt    time.Time // UTC
	Status    JobStatus
	CreatedAt time.Time // UTC
}

// ReminderJobID derives the deterministic job key for a reminder.
// Identical recipient and fire-instant collide on purpose: submitting the
// same reminder twice produces a single dispatch.
func ReminderJobID(recipient string, fireAt time.Time) string {
	return fmt.Sprintf("reminder:%s:%d", recipient, fireAt.Unix())
}

// CheckinJobID derives the job key for the k-th check-in of a goal.
func CheckinJobID(recipient, goalID string, k int) string {
	return fmt.Sprintf("checkin:%s:%s:%d", recipient, goalID, k)
}

// BriefingJobID derives the job key for a recipient's morning briefing.
// One briefing job per recipient; re-arming upserts the same key.
func BriefingJobID(recipient string) string {
	return fmt.Sprintf("briefing:%s", recipient)
}
