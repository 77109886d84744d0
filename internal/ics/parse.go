package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "studiocal/internal/log"
)

// Event is a VEVENT reduced to what the calendar needs.
type Event struct {
	UID      string
	Summary  string
	Location string

	Start  time.Time
	End    time.Time // exclusive, as in DTEND
	AllDay bool

	RawRRule string
	ExDates  []time.Time
}

// Parse reads an iCalendar payload. Events without a UID or DTSTART are
// logged and skipped.
func Parse(feed Feed, body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []Event
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			appLog.Warn("ics vevent skipped", "id", feed.ID, "err", err)
			continue
		}
		out = append(out, ev)
	}
	appLog.Debug("ics parsed", "id", feed.ID, "events", len(out))
	return out, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var ev Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, errors.New("missing UID")
	}
	ev.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = strings.TrimSpace(p.Value)
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, errors.New("missing DTSTART")
	}
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		ev.AllDay = true
	}
	if !strings.Contains(dtStart.Value, "T") {
		ev.AllDay = true
	}

	var err error
	if ev.AllDay {
		if ev.Start, err = ve.GetAllDayStartAt(); err != nil {
			return ev, err
		}
		ev.End, err = ve.GetAllDayEndAt()
		if err != nil || !ev.End.After(ev.Start) {
			ev.End = ev.Start.AddDate(0, 0, 1)
		}
	} else {
		if ev.Start, err = ve.GetStartAt(); err != nil {
			return ev, err
		}
		ev.End, err = ve.GetEndAt()
		if err != nil || ev.End.Before(ev.Start) {
			ev.End = ev.Start
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RawRRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(part), ev.Start.Location()); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}
	return ev, nil
}

// parseICSTime handles the bare DATE / DATE-TIME forms found in EXDATE.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
