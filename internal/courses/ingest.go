package courses

import (
	"errors"
	"fmt"
	"strings"

	"studiocal/internal/locale"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

const statusUnpublished = "Не опубликован"

// Hidden reports whether a course should stay off the calendar: it was
// never published and nobody has paid for it.
func Hidden(c model.Course) bool {
	return c.Status == statusUnpublished && c.NumPayments != nil && *c.NumPayments == 0
}

// ParseCourse converts one raw course, reading its date label in year.
// A label that cannot be parsed yields a *locale.FormatError.
func ParseCourse(c model.Course, year int) (model.EventRecord, error) {
	dates, err := locale.ParseDates(c.Date, year)
	if err != nil {
		return model.EventRecord{}, err
	}

	rec := model.EventRecord{
		Name:         c.Name,
		Type:         CourseType(c.Name),
		StartDate:    dates[0],
		Place:        c.Place,
		Teachers:     ParseTeachers(c.Teachers),
		Time:         strings.TrimSpace(c.Time),
		DatesText:    c.Date,
		TeachersText: c.Teachers,
		NumPayments:  c.NumPayments,
		Status:       c.Status,
	}
	if len(dates) == 2 {
		rec.EndDate = dates[1]
	}
	return rec, nil
}

// Prepare drops hidden courses and parses the rest in order. Courses whose
// date label cannot be parsed are skipped and logged; their errors are
// returned joined alongside the records that did parse.
func Prepare(courses []model.Course, year int) ([]model.EventRecord, error) {
	out := make([]model.EventRecord, 0, len(courses))
	var errs []error

	for _, c := range courses {
		if Hidden(c) {
			appLog.Debug("course hidden", "name", c.Name, "date", c.Date)
			continue
		}
		rec, err := ParseCourse(c, year)
		if err != nil {
			appLog.Warn("course skipped", "name", c.Name, "date", c.Date, "err", err)
			errs = append(errs, fmt.Errorf("course %q: %w", c.Name, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errors.Join(errs...)
}
