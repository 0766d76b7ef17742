// Package datekey handles canonical local-calendar-day keys of the form
// YYYY-MM-DD. Day arithmetic goes through date components rather than
// elapsed-time math, so daylight-saving shifts cannot skew day boundaries.
// Two keys are equal iff their strings are equal.
package datekey

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Today returns the key for the current local wall-clock day.
func Today() string {
	return time.Now().Format(Layout)
}

// FromTime returns the key for t's local calendar day.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// AddDays returns the key n calendar days after key (n may be negative).
// An unparseable key is returned unchanged; callers validate upstream.
func AddDays(key string, n int) string {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return key
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// Compare orders two keys: -1, 0, or 1. Lexicographic order on the layout
// matches chronological order.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// Valid reports whether key is a well-formed, zero-padded day key.
func Valid(key string) bool {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	return err == nil && t.Format(Layout) == key
}
