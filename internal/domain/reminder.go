package domain

import "time"

// Reminder is a one-shot scheduled message. ID doubles as the job key, so
// the reminder and its job collide deterministically.
type Reminder struct {
	ID        string
	Recipient string
	Task      string
	FireAt    time.Time // UTC
	// Done is set by an explicit acknowledgement, never by dispatch.
	// Unacknowledged reminders are left dangling; there is no expiry.
	Done      bool
	CreatedAt time.Time // UTC
}

// Goal is a self-reported objective with scheduled check-ins.
type Goal struct {
	ID        string
	Recipient string
	Text      string
	// Offsets is the check-in cadence measured from CreatedAt.
	Offsets   [CheckinCount]time.Duration
	Done      bool
	CreatedAt time.Time // UTC
}
