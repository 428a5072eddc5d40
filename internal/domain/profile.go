package domain

import (
	"strings"
	"time"
)

// DefaultAssistantName is the display name before the user picks one.
const DefaultAssistantName = "Assistant"

// Profile is the per-recipient conversation state. Created lazily on first
// contact and never deleted; LastSeenAt is touched on every inbound message.
type Profile struct {
	Recipient     string
	Language      Locale
	AssistantName string
	// TZ is inferred once from the recipient address at creation and only
	// changes on an explicit command.
	TZ         string
	LastSeenAt time.Time // UTC
	CreatedAt  time.Time // UTC
}

// Location resolves the profile's IANA zone, falling back to UTC.
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.TZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// tzByPrefix maps country calling-code prefixes to a home timezone.
// Longest prefix wins. A coarse convention, not a geo lookup.
var tzByPrefix = []struct {
	prefix string
	zone   string
}{
	{"+971", "Asia/Dubai"},
	{"+65", "Asia/Singapore"},
	{"+91", "Asia/Kolkata"},
	{"+44", "Europe/London"},
	{"+49", "Europe/Berlin"},
	{"+81", "Asia/Tokyo"},
	{"+7", "Europe/Moscow"},
	{"+1", "America/New_York"},
}

// InferTimezone guesses a timezone from the recipient's raw address
// (e.g. "whatsapp:+919876543210"). Unknown prefixes get fallback. Called
// once at profile creation; the result is never re-derived.
func InferTimezone(recipient, fallback string) string {
	addr := recipient
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		addr = addr[i+1:]
	}
	for _, e := range tzByPrefix {
		if strings.HasPrefix(addr, e.prefix) {
			return e.zone
		}
	}
	return fallback
}

// NewProfile builds the default profile for a first-contact recipient.
func NewProfile(recipient, fallbackTZ string, loc Locale, now time.Time) *Profile {
	return &Profile{
		Recipient:     recipient,
		Language:      loc,
		AssistantName: DefaultAssistantName,
		TZ:            InferTimezone(recipient, fallbackTZ),
		LastSeenAt:    now.UTC(),
		CreatedAt:     now.UTC(),
	}
}
