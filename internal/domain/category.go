package domain

import (
	"strings"
	"time"
)

// CheckinCount is the number of check-ins scheduled per goal.
const CheckinCount = 3

// goalCategories is scanned in order; the first category with a matching
// keyword decides the check-in cadence. Offsets are measured from the
// goal's creation instant.
var goalCategories = []struct {
	name     string
	keywords []string
	cadence  [CheckinCount]time.Duration
}{
	{"writing", []string{"write", "writing", "essay", "blog", "draft", "journal", "लिख", "निबंध"},
		[...]time.Duration{2 * time.Hour, 4 * time.Hour, 6 * time.Hour}},
	{"study", []string{"study", "read", "learn", "revise", "chapter", "exam", "पढ़", "अध्याय"},
		[...]time.Duration{90 * time.Minute, 3 * time.Hour, 5 * time.Hour}},
	{"exercise", []string{"workout", "exercise", "gym", "run", "walk", "yoga", "कसरत", "योग"},
		[...]time.Duration{3 * time.Hour, 6 * time.Hour, 9 * time.Hour}},
	{"communication", []string{"call", "email", "message", "meet", "client", "कॉल", "मीटिंग"},
		[...]time.Duration{1 * time.Hour, 2 * time.Hour, 4 * time.Hour}},
}

// defaultCadence is used when no category keyword matches.
var defaultCadence = [CheckinCount]time.Duration{2 * time.Hour, 4 * time.Hour, 7 * time.Hour}

// Cadence returns the check-in offsets for a stated goal. Pure table
// lookup; no computation beyond retrieval.
func Cadence(goalText string) [CheckinCount]time.Duration {
	low := strings.ToLower(goalText)
	for _, c := range goalCategories {
		for _, kw := range c.keywords {
			if strings.Contains(low, kw) {
				return c.cadence
			}
		}
	}
	return defaultCadence
}
