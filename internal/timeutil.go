package internal

import (
	"strings"
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// TimestampStamp returns the compact timestamp used in log file names.
func TimestampStamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// tripTimeLayouts covers every timestamp format observed across the three
// trip-file eras: ISO with and without fractional seconds, and the
// US-style M/D/YYYY variants that show up in 2015-2016 files.
var tripTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.9",
	"2006-01-02 15:04:05.999999",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseTripTime parses a trip timestamp, trying each known layout in order.
func ParseTripTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range tripTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTripTime renders a trip timestamp the way normalized output stores it.
func FormatTripTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
