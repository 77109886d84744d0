package calendar

import (
	"time"

	"studiocal/internal/model"
)

// Day is one grid cell together with the blocks that begin in it.
type Day struct {
	Date    time.Time
	InMonth bool
	Blocks  []Block
}

// WeekRow is one row of a laid-out month.
type WeekRow struct {
	Number int
	Days   []Day
	Blocks []Block // all blocks of the row, lanes assigned, by StartWeekday
	Lanes  int     // number of lanes in use
}

// MonthLayout is everything a renderer needs for one month.
type MonthLayout struct {
	YearMonth
	Weeks []WeekRow
}

// Blocks returns every block of the month in row order.
func (l MonthLayout) Blocks() []Block {
	var out []Block
	for _, w := range l.Weeks {
		out = append(out, w.Blocks...)
	}
	return out
}

// Layout segments every event into ym's grid and assigns lanes per row.
// Events are visited in slice order, so the result is deterministic for a
// given input. Blocks point into events.
func (w *WeekIndex) Layout(ym YearMonth, events []model.EventRecord) MonthLayout {
	grid := w.Grid(ym)

	perWeek := make([][]Block, len(grid.Weeks))
	for i := range events {
		ev := &events[i]
		if ev.StartDate.After(grid.Last()) || ev.LastDate().Before(grid.First()) {
			continue
		}
		for _, b := range w.Segment(ev.StartDate, ev.EndDate, ym) {
			b.Event = ev
			perWeek[b.Week-1] = append(perWeek[b.Week-1], b)
		}
	}

	out := MonthLayout{YearMonth: ym, Weeks: make([]WeekRow, len(grid.Weeks))}
	for i, dates := range grid.Weeks {
		blocks := AssignLanes(perWeek[i])

		row := WeekRow{
			Number: i + 1,
			Days:   make([]Day, len(dates)),
			Blocks: blocks,
		}
		for j, d := range dates {
			row.Days[j] = Day{Date: d, InMonth: d.Month() == ym.Month}
		}
		for _, b := range blocks {
			row.Days[b.StartWeekday-1].Blocks = append(row.Days[b.StartWeekday-1].Blocks, b)
			if b.Lane > row.Lanes {
				row.Lanes = b.Lane
			}
		}
		out.Weeks[i] = row
	}
	return out
}

// Layout runs WeekIndex.Layout on the process-wide index.
func Layout(ym YearMonth, events []model.EventRecord) MonthLayout {
	return defaultIndex.Layout(ym, events)
}
