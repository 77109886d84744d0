// Package calendar lays out multi-day events on a Monday-first month grid.
//
// The pipeline for one displayed month is:
//
//	Grid -> WeekIndex -> Segment -> AssignLanes
//
// Layout runs all of it for a list of events. Every step is a pure in-memory
// computation; only the WeekIndex keeps state between calls.
package calendar

import (
	"fmt"
	"time"
)

// YearMonth identifies one displayed month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Valid reports whether Month is within 1..12.
func (ym YearMonth) Valid() bool {
	return ym.Month >= time.January && ym.Month <= time.December
}

// Of returns the YearMonth containing d.
func Of(d time.Time) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// Date returns the UTC midnight for y-m-d. All dates handled by this
// package are UTC midnights so that Equal/Before compare calendar days.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Month is the week-row structure of one displayed month. Weeks[i] always
// holds 7 consecutive dates starting on a Monday; the first row may begin
// in the previous month and the last row may end in the next one.
type Month struct {
	YearMonth
	Weeks [][]time.Time
}

// First returns the first date shown in the grid.
func (m Month) First() time.Time {
	return m.Weeks[0][0]
}

// Last returns the last date shown in the grid.
func (m Month) Last() time.Time {
	w := m.Weeks[len(m.Weeks)-1]
	return w[len(w)-1]
}

// Contains reports whether d is one of the grid's cells.
func (m Month) Contains(d time.Time) bool {
	return !d.Before(m.First()) && !d.After(m.Last())
}

// Grid builds the week rows for ym. An out-of-range month is a caller bug
// and panics.
func Grid(ym YearMonth) Month {
	if !ym.Valid() {
		panic(fmt.Sprintf("calendar: invalid month %d", int(ym.Month)))
	}

	first := Date(ym.Year, ym.Month, 1)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -(ISOWeekday(first) - 1))
	end := last.AddDate(0, 0, 7-ISOWeekday(last))

	m := Month{YearMonth: ym}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = d.AddDate(0, 0, i)
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}
