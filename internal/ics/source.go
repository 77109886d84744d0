package ics

import (
	"context"
	"fmt"
	"time"

	"studiocal/internal/calendar"
	"studiocal/internal/locale"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

// FeedSource lists courses from subscribed iCalendar feeds. Each occurrence
// starting in the requested month becomes one course whose Date is a
// locale label, so it goes through the same parsing as portal data.
type FeedSource struct {
	fetcher *Fetcher
	feeds   []Feed
	loc     *time.Location
}

// NewFeedSource returns a source over feeds. Occurrence dates are taken in
// loc (time.Local if nil).
func NewFeedSource(fetcher *Fetcher, feeds []Feed, loc *time.Location) *FeedSource {
	if loc == nil {
		loc = time.Local
	}
	return &FeedSource{fetcher: fetcher, feeds: feeds, loc: loc}
}

// FindCourses implements courses.Source. A feed that cannot be fetched or
// parsed is logged and skipped.
func (s *FeedSource) FindCourses(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error) {
	from := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	var out []model.Course
	for _, feed := range s.feeds {
		body, _, err := s.fetcher.Fetch(ctx, feed)
		if err != nil {
			appLog.Error("feed skipped", err, "id", feed.ID)
			continue
		}
		events, err := Parse(feed, body)
		if err != nil {
			appLog.Error("feed parse failed", err, "id", feed.ID)
			continue
		}
		for _, occ := range Expand(events, from, to) {
			if calendar.Of(s.day(occ, occ.Start)) != ym {
				continue
			}
			out = append(out, s.course(occ))
		}
	}
	return out, nil
}

// day returns the calendar day of t. All-day values keep the date they
// were written with; timed values are read in the display zone.
func (s *FeedSource) day(occ Occurrence, t time.Time) time.Time {
	if occ.Event.AllDay {
		return calendar.Truncate(t)
	}
	return calendar.Truncate(t.In(s.loc))
}

func (s *FeedSource) course(occ Occurrence) model.Course {
	start := occ.Start.In(s.loc)
	end := occ.End.In(s.loc)

	first := s.day(occ, occ.Start)
	last := s.day(occ, occ.End)
	switch {
	case occ.Event.AllDay:
		last = last.AddDate(0, 0, -1)
	case end.After(start) && end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0:
		last = last.AddDate(0, 0, -1)
	}
	if last.Before(first) {
		last = first
	}

	c := model.Course{
		Name:  occ.Event.Summary,
		Date:  locale.FormatRange(first, last),
		Place: occ.Event.Location,
	}
	if !occ.Event.AllDay {
		c.Time = fmt.Sprintf("%02d:%02d", start.Hour(), start.Minute())
	}
	return c
}
