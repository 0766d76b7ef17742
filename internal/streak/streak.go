// Package streak computes the consecutive-day writing streak and milestone
// crossings.
package streak

import "ai-diary/internal/datekey"

// Interval is the milestone spacing: 10, 20, 30, ...
const Interval = 10

// Compute returns the number of consecutive calendar days ending at today
// that each have at least one entry. The walk starts at today, so a day
// without an entry yet scores 0 even when yesterday has one.
func Compute(dates []string) int {
	if len(dates) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		present[d] = struct{}{}
	}

	n := 0
	for d := datekey.Today(); ; d = datekey.AddDays(d, -1) {
		if _, ok := present[d]; !ok {
			break
		}
		n++
	}
	return n
}

// IsMilestone reports whether s is a positive multiple of Interval that has
// not been celebrated yet. Evaluated on the submit path only.
func IsMilestone(s int, celebrated map[int]bool) bool {
	return s > 0 && s%Interval == 0 && !celebrated[s]
}
