// Package recur expands a weekday schedule into concrete dates.
package recur

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"studiocal/internal/calendar"
)

var byWeekday = [8]rrule.Weekday{
	1: rrule.MO,
	2: rrule.TU,
	3: rrule.WE,
	4: rrule.TH,
	5: rrule.FR,
	6: rrule.SA,
	7: rrule.SU,
}

// Expand returns every date falling on one of weekdays (1 = Monday ..
// 7 = Sunday) that appears in the month grid of start, including the
// neighbouring-month days shown in that grid, and that lies within
// [start, end]. A zero end leaves the range open above, but expansion never
// leaves start's grid.
//
// Results are grouped by weekday in the order given, each group in date
// order. Sort the result if strict chronological order is needed.
func Expand(weekdays []int, start, end time.Time) ([]time.Time, error) {
	start = calendar.Truncate(start)
	if !end.IsZero() {
		end = calendar.Truncate(end)
	}

	grid := calendar.DefaultIndex().Grid(calendar.Of(start))

	var out []time.Time
	for _, wd := range weekdays {
		if wd < 1 || wd > 7 {
			return nil, fmt.Errorf("recur: weekday %d out of range 1..7", wd)
		}

		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   grid.First(),
			Until:     grid.Last(),
			Byweekday: []rrule.Weekday{byWeekday[wd]},
		})
		if err != nil {
			return nil, fmt.Errorf("recur: build rule for weekday %d: %w", wd, err)
		}

		for _, d := range r.All() {
			d = calendar.Truncate(d)
			if d.Before(start) {
				continue
			}
			if !end.IsZero() && d.After(end) {
				continue
			}
			out = append(out, d)
		}
	}
	return out, nil
}
