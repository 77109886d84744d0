package recur

import (
	"testing"
	"time"

	"studiocal/internal/calendar"
)

func dates(ds ...time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpand(t *testing.T) {
	d := calendar.Date
	tests := []struct {
		name       string
		weekdays   []int
		start, end time.Time
		want       []string
	}{
		{
			name:     "single wednesday in window",
			weekdays: []int{3},
			start:    d(2026, time.April, 10),
			end:      d(2026, time.April, 20),
			want:     []string{"2026-04-15"},
		},
		{
			name:     "open end runs to the grid's last day",
			weekdays: []int{3},
			start:    d(2026, time.April, 10),
			want:     []string{"2026-04-15", "2026-04-22", "2026-04-29"},
		},
		{
			name:     "grouped by weekday in given order",
			weekdays: []int{5, 2},
			start:    d(2026, time.April, 1),
			end:      d(2026, time.April, 15),
			want:     []string{"2026-04-03", "2026-04-10", "2026-04-07", "2026-04-14"},
		},
		{
			name:     "includes lead-out days of the grid",
			weekdays: []int{3},
			start:    d(2026, time.March, 30),
			want:     []string{"2026-04-01"},
		},
		{
			name:     "end in a later month does not extend expansion",
			weekdays: []int{7},
			start:    d(2026, time.April, 20),
			end:      d(2026, time.June, 30),
			want:     []string{"2026-04-26", "2026-05-03"},
		},
		{
			name:     "start is inclusive",
			weekdays: []int{1},
			start:    d(2026, time.April, 27),
			end:      d(2026, time.April, 27),
			want:     []string{"2026-04-27"},
		},
		{
			name:     "no weekdays",
			weekdays: nil,
			start:    d(2026, time.April, 1),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.weekdays, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Expand() error: %v", err)
			}
			if g := dates(got...); !equal(g, tt.want) {
				t.Errorf("Expand() = %v, want %v", g, tt.want)
			}
		})
	}
}

func TestExpandRejectsBadWeekday(t *testing.T) {
	if _, err := Expand([]int{8}, calendar.Date(2026, time.April, 1), time.Time{}); err == nil {
		t.Fatal("expected error for weekday 8")
	}
}
