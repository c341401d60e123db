package printer

import (
	"time"
)

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatElapsed returns the time between start and end rounded to milliseconds.
// If end is missing it returns "-".
func FormatElapsed(start time.Time, end *time.Time) string {
	if end == nil {
		return "-"
	}

	d := end.Sub(start)
	if d < 0 {
		d = 0
	}

	return d.Round(time.Millisecond).String()
}
