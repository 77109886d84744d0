package calendar

import (
	"fmt"
	"sort"
)

type lane struct {
	lastEnd int
	index   int
}

// AssignLanes sets Lane on each block of a single week row, first-fit in
// order of StartWeekday (ties keep input order). Two blocks share a lane only
// if one ends strictly before the other starts. The result is sorted by
// StartWeekday; the input slice is not modified.
//
// This is greedy first-fit, not a minimum-lane colouring. Blocks from
// different weeks are a caller bug and panic.
func AssignLanes(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	if len(out) == 0 {
		return out
	}

	week := out[0].Week
	for _, b := range out[1:] {
		if b.Week != week {
			panic(fmt.Sprintf("calendar: AssignLanes got blocks from weeks %d and %d", week, b.Week))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartWeekday < out[j].StartWeekday
	})

	var lanes []lane
	for i := range out {
		b := &out[i]
		placed := false
		for l := range lanes {
			if lanes[l].lastEnd < b.StartWeekday {
				lanes[l].lastEnd = b.EndWeekday
				b.Lane = lanes[l].index
				placed = true
				break
			}
		}
		if !placed {
			next := lane{lastEnd: b.EndWeekday, index: len(lanes) + 1}
			lanes = append(lanes, next)
			b.Lane = next.index
		}
	}
	return out
}
