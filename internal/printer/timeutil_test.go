package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/kitchen/internal/printer"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 19, 10, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "2026-10-19 08:30:00 UTC", printer.FormatTimestamp(ts))
}

func TestFormatElapsed(t *testing.T) {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	ptr := func(t time.Time) *time.Time { return &t }

	tests := map[string]struct {
		end      *time.Time
		expected string
	}{
		"Missing end should be unknown": {
			end:      nil,
			expected: "-",
		},
		"Sub second durations should be rounded to milliseconds": {
			end:      ptr(start.Add(1234567 * time.Microsecond)),
			expected: "1.235s",
		},
		"End before start should be zero": {
			end:      ptr(start.Add(-time.Second)),
			expected: "0s",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatElapsed(start, test.end))
		})
	}
}
