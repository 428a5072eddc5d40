package store

import (
	"strings"
	"time"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// Times are stored as Unix seconds in UTC.

func toUnix(t time.Time) int64 {
	return t.UTC().Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// encodeOffsets serializes a goal cadence as comma-joined durations
// ("2h0m0s,4h0m0s,6h0m0s").
func encodeOffsets(offsets [domain.CheckinCount]time.Duration) string {
	parts := make([]string, len(offsets))
	for i, d := range offsets {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

func decodeOffsets(s string) [domain.CheckinCount]time.Duration {
	var offsets [domain.CheckinCount]time.Duration
	for i, part := range strings.Split(s, ",") {
		if i >= len(offsets) {
			break
		}
		if d, err := time.ParseDuration(part); err == nil {
			offsets[i] = d
		}
	}
	return offsets
}
