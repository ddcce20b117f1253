package appointments

import (
	"strings"
	"time"
)

// scheduledTimeLayouts are the accepted input shapes for a schedule time.
// Layouts without an offset are interpreted as UTC so that
// "2024-12-25 14:30" and "2024-12-25T14:30:00.000Z" mean the same instant.
var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseScheduledTime normalizes a human or machine timestamp to the one
// canonical stored representation: a UTC instant.
func ParseScheduledTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, validationErrorf("scheduledTime is required")
	}
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validationErrorf("invalid scheduledTime format, use YYYY-MM-DD HH:MM or ISO format")
}
