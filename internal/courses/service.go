package courses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"studiocal/internal/calendar"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

// Store persists raw courses per month.
type Store interface {
	LoadAdmin(ym calendar.YearMonth) ([]model.Course, error)
	SaveAdmin(ym calendar.YearMonth, courses []model.Course) error
	LoadManual(ym calendar.YearMonth) ([]model.Course, error)
	AppendManual(ym calendar.YearMonth, courses []model.Course) error
}

// Source lists courses for one month from an external system.
type Source interface {
	FindCourses(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error)

func (f SourceFunc) FindCourses(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error) {
	return f(ctx, ym)
}

// Service merges the cached admin snapshot with manual entries for a month.
type Service struct {
	store   Store
	sources []Source
}

// NewService returns a Service. With no sources, months without a cached
// snapshot have only manual entries.
func NewService(store Store, sources ...Source) *Service {
	return &Service{store: store, sources: sources}
}

// Courses returns the raw courses for ym: the admin snapshot (fetched and
// cached on first use), then manual entries. Unreadable files are logged and
// treated as empty.
func (s *Service) Courses(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error) {
	admin, err := s.store.LoadAdmin(ym)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		admin, err = s.fetch(ctx, ym)
		if err != nil {
			return nil, err
		}
	default:
		appLog.Warn("admin snapshot unreadable; ignoring", "month", ym.String(), "err", err)
		admin = nil
	}

	manual, err := s.store.LoadManual(ym)
	if err != nil {
		appLog.Warn("manual entries unreadable; ignoring", "month", ym.String(), "err", err)
		manual = nil
	}

	out := make([]model.Course, 0, len(admin)+len(manual))
	out = append(out, admin...)
	out = append(out, manual...)
	return out, nil
}

// Events returns the month's courses as EventRecords. Unparseable courses
// are skipped; see Prepare.
func (s *Service) Events(ctx context.Context, ym calendar.YearMonth) ([]model.EventRecord, error) {
	raw, err := s.Courses(ctx, ym)
	if err != nil {
		return nil, err
	}
	events, perr := Prepare(raw, ym.Year)
	if perr != nil {
		appLog.Debug("some courses skipped", "month", ym.String(), "err", perr)
	}
	return events, nil
}

// Refresh re-fetches the admin snapshot for ym and replaces the cached one.
func (s *Service) Refresh(ctx context.Context, ym calendar.YearMonth) error {
	_, err := s.fetch(ctx, ym)
	return err
}

func (s *Service) fetch(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error) {
	if len(s.sources) == 0 {
		return nil, nil
	}

	var all []model.Course
	for _, src := range s.sources {
		got, err := src.FindCourses(ctx, ym)
		if err != nil {
			return nil, fmt.Errorf("courses: fetch %s: %w", ym, err)
		}
		all = append(all, got...)
	}

	if err := s.store.SaveAdmin(ym, all); err != nil {
		appLog.Error("admin snapshot save failed", err, "month", ym.String())
	}
	appLog.Info("admin courses fetched", "month", ym.String(), "count", len(all))
	return all, nil
}

// Submit stores the form's entries and reports the month of its start date
// and how many entries were added. Each entry goes to the file of the month
// its own date falls in, so a lead-out occurrence in the next month (or next
// year) is read back with the right year. f must already have passed
// FormValidator.
func (s *Service) Submit(f EventForm) (calendar.YearMonth, int, error) {
	ym := calendar.Of(f.StartDate)

	var entries []datedCourse
	if f.Recurring() {
		var err error
		entries, err = recurringEntries(f)
		if err != nil {
			return ym, 0, err
		}
	} else {
		entries = []datedCourse{{date: f.StartDate, course: MakeEvent(f)}}
	}

	var months []calendar.YearMonth
	byMonth := map[calendar.YearMonth][]model.Course{}
	for _, e := range entries {
		m := calendar.Of(e.date)
		if _, ok := byMonth[m]; !ok {
			months = append(months, m)
		}
		byMonth[m] = append(byMonth[m], e.course)
		appLog.Debug("event submitted", "name", e.course.Name, "date", e.course.Date, "month", m.String())
	}

	added := 0
	for _, m := range months {
		if err := s.store.AppendManual(m, byMonth[m]); err != nil {
			return ym, added, err
		}
		added += len(byMonth[m])
	}
	return ym, added, nil
}
