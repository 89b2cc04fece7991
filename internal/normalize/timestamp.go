package normalize

import (
	"strings"
	"time"
)

const (
	dateLayout = "02-01-2006" // DD-MM-YYYY
	// Comma before the fractional part: downstream consumers expect
	// Latin-locale time formatting, the separator is part of the contract.
	timeLayout = "15:04:05,000"
)

// FormatDate converts an ISO-8601 timestamp into "DD-MM-YYYY".
//
// A trailing "Z" is treated as UTC. On any parse failure the raw input is
// returned unchanged and ok is false, so callers can tell a fallback from
// a successful format.
func FormatDate(ts string) (string, bool) {
	t, err := parseISO(ts)
	if err != nil {
		return ts, false
	}
	return t.Format(dateLayout), true
}

// FormatTime converts an ISO-8601 timestamp into "HH:MM:SS,mmm".
//
// Sub-millisecond precision is truncated, never rounded: the feed publishes
// nanosecond trade times and the export keeps exactly three fractional
// digits. Degrades like FormatDate on parse failure.
func FormatTime(ts string) (string, bool) {
	t, err := parseISO(ts)
	if err != nil {
		return ts, false
	}
	return t.Format(timeLayout), true
}

func parseISO(ts string) (time.Time, error) {
	s := strings.TrimSpace(ts)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Some producers omit the offset entirely.
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}
