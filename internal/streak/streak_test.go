package streak

import (
	"testing"

	"ai-diary/internal/datekey"
)

func daysAgo(n int) string {
	return datekey.AddDays(datekey.Today(), -n)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty set", nil, 0},
		{"only past days", []string{daysAgo(1), daysAgo(2)}, 0},
		{"today only", []string{daysAgo(0)}, 1},
		{"three consecutive then gap", []string{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(4)}, 3},
		{"duplicates count once", []string{daysAgo(0), daysAgo(0), daysAgo(1)}, 2},
		{"gap at yesterday", []string{daysAgo(0), daysAgo(2), daysAgo(3)}, 1},
		{"ten consecutive", []string{
			daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4),
			daysAgo(5), daysAgo(6), daysAgo(7), daysAgo(8), daysAgo(9),
		}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.dates); got != tt.want {
				t.Errorf("Compute() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsMilestone(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		celebrated map[int]bool
		want       bool
	}{
		{"first milestone", 10, map[int]bool{}, true},
		{"already celebrated", 10, map[int]bool{10: true}, false},
		{"not a multiple", 15, map[int]bool{}, false},
		{"zero streak", 0, map[int]bool{}, false},
		{"second milestone with first celebrated", 20, map[int]bool{10: true}, true},
		{"nil celebrated set", 30, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMilestone(tt.streak, tt.celebrated); got != tt.want {
				t.Errorf("IsMilestone(%d) = %v, want %v", tt.streak, got, tt.want)
			}
		})
	}
}
