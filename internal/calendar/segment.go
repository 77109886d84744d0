package calendar

import (
	"time"

	"studiocal/internal/model"
)

// Block is the part of one event drawn in one week row.
type Block struct {
	Week         int // grid row, 1-based
	StartWeekday int // 1 = Monday .. 7 = Sunday
	EndWeekday   int
	Lane         int // 1-based; 0 until AssignLanes runs

	// Start and End are the first and last dates covered by the block.
	Start time.Time
	End   time.Time

	Event *model.EventRecord
}

// Days returns how many grid cells the block covers.
func (b Block) Days() int {
	return b.EndWeekday - b.StartWeekday + 1
}

// Segment splits the inclusive range [start, end] into one block per week
// row of ym's grid. A zero end means a single-day range.
//
// Dates after the last grid cell are dropped, as are dates with no row in
// the grid. Enumeration stops at the first run whose row is above the start
// row; that only happens when a (month, day) key from another year lands in
// this grid.
func (w *WeekIndex) Segment(start, end time.Time, ym YearMonth) []Block {
	start = Truncate(start)
	if end.IsZero() {
		end = start
	}
	end = Truncate(end)

	last := w.Grid(ym).Last()
	if end.After(last) {
		end = last
	}

	startWeek, haveStart := w.WeekOf(start, ym)

	var (
		out  []Block
		run  *Block
		prev time.Time
	)

	emit := func() bool {
		if run == nil {
			return true
		}
		b := *run
		run = nil
		if !haveStart {
			startWeek, haveStart = b.Week, true
		}
		if b.Week < startWeek {
			return false
		}
		out = append(out, b)
		return true
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		week, ok := w.WeekOf(d, ym)
		if !ok {
			if !emit() {
				return out
			}
			continue
		}
		if run != nil && run.Week == week && prev.AddDate(0, 0, 1).Equal(d) {
			run.EndWeekday = ISOWeekday(d)
			run.End = d
			prev = d
			continue
		}
		if !emit() {
			return out
		}
		run = &Block{
			Week:         week,
			StartWeekday: ISOWeekday(d),
			EndWeekday:   ISOWeekday(d),
			Start:        d,
			End:          d,
		}
		prev = d
	}
	emit()
	return out
}

// Segment runs WeekIndex.Segment on the process-wide index.
func Segment(start, end time.Time, ym YearMonth) []Block {
	return defaultIndex.Segment(start, end, ym)
}
