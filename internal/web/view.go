package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"studiocal/internal/calendar"
	"studiocal/internal/courses"
	"studiocal/internal/locale"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("year.html").ParseFS(templateFS, "templates/year.html"))

type yearPage struct {
	Year     int
	Years    []int
	Months   []monthView
	Types    []courses.EventType
	Teachers []teacherOption
	Weekdays [7]string
}

type teacherOption struct {
	Value string // "Surname Name", as validated
	Label string // "Name Surname"
}

type monthView struct {
	ID          string // anchor, "2026-04"
	Title       string
	Unavailable bool
	Weeks       []weekView
}

type weekView struct {
	Number int
	Days   []dayView
	Blocks []blockView
	Rows   int // day-number row plus one per lane
}

type dayView struct {
	Day     int
	InMonth bool
	Column  int
}

// blockView is one positioned block with the display fields of its event.
type blockView struct {
	Row    int // CSS grid row; the day numbers occupy row 1
	Column int
	Span   int

	Type     string
	Name     string
	Label    string
	Place    string
	Teachers string
	Time     string
}

// monthViewFor lays out events into ym and converts the result for the
// template. Blocks in different lanes land in different grid rows.
func monthViewFor(ym calendar.YearMonth, events []model.EventRecord) monthView {
	layout := calendar.Layout(ym, events)

	mv := monthView{
		ID:    ym.String(),
		Title: locale.Title(ym.Month),
		Weeks: make([]weekView, 0, len(layout.Weeks)),
	}
	for _, row := range layout.Weeks {
		wv := weekView{
			Number: row.Number,
			Days:   make([]dayView, 0, len(row.Days)),
			Blocks: make([]blockView, 0, len(row.Blocks)),
			Rows:   row.Lanes + 1,
		}
		for i, d := range row.Days {
			wv.Days = append(wv.Days, dayView{Day: d.Date.Day(), InMonth: d.InMonth, Column: i + 1})
		}
		for _, b := range row.Blocks {
			wv.Blocks = append(wv.Blocks, blockFor(b))
		}
		mv.Weeks = append(mv.Weeks, wv)
	}
	return mv
}

func blockFor(b calendar.Block) blockView {
	ev := b.Event
	v := blockView{
		Row:    b.Lane + 1,
		Column: b.StartWeekday,
		Span:   b.Days(),
		Type:   courses.UnknownType,
	}
	if ev == nil {
		return v
	}
	if ev.Type != "" {
		v.Type = ev.Type
	}
	v.Name = ev.Name
	v.Label = locale.FormatRange(ev.StartDate, ev.EndDate)
	v.Place = ev.Place
	v.Time = ev.Time
	if ev.TeachersText != "" {
		v.Teachers = ev.TeachersText
	} else {
		v.Teachers = strings.Join(ev.Teachers, ", ")
	}
	return v
}

// RenderYear writes the HTML page with all twelve months of year. Events of
// the neighbouring months, including December of the year before and
// January of the year after, are included so that lead-in and lead-out days
// show what runs there.
func (s *Server) RenderYear(ctx context.Context, w io.Writer, year int) error {
	byMonth, failed := s.yearEvents(ctx, year)

	teachers := s.cfg.Teachers
	if len(teachers) == 0 {
		teachers = courses.DefaultTeachers
	}

	page := yearPage{
		Year:     year,
		Years:    s.cfg.Years,
		Months:   make([]monthView, 0, 12),
		Types:    courses.EventTypes,
		Weekdays: courses.WeekdayLabels,
	}
	for _, t := range teachers {
		page.Teachers = append(page.Teachers, teacherOption{Value: t, Label: courses.DisplayTeacher(t)})
	}

	for m := time.January; m <= time.December; m++ {
		i := int(m) - 1
		var events []model.EventRecord
		if i > 0 {
			events = append(events, byMonth[i-1]...)
		} else {
			events = append(events, s.neighbourEvents(ctx, calendar.YearMonth{Year: year - 1, Month: time.December})...)
		}
		events = append(events, byMonth[i]...)
		if i < 11 {
			events = append(events, byMonth[i+1]...)
		} else {
			events = append(events, s.neighbourEvents(ctx, calendar.YearMonth{Year: year + 1, Month: time.January})...)
		}

		mv := monthViewFor(calendar.YearMonth{Year: year, Month: m}, events)
		mv.Unavailable = failed[m]
		page.Months = append(page.Months, mv)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// neighbourEvents loads a month shown only in lead-in or lead-out days. A
// failure leaves those days empty.
func (s *Server) neighbourEvents(ctx context.Context, ym calendar.YearMonth) []model.EventRecord {
	events, err := s.svc.Events(ctx, ym)
	if err != nil {
		appLog.Warn("neighbour month unavailable", "month", ym.String(), "err", err)
		return nil
	}
	return events
}
