// Package refresh periodically re-fetches admin course snapshots.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"studiocal/internal/calendar"
	appLog "studiocal/internal/log"
)

// Refresher replaces the cached snapshot for one month.
type Refresher interface {
	Refresh(ctx context.Context, ym calendar.YearMonth) error
}

// DefaultTimeout bounds a single scheduled run.
const DefaultTimeout = 4 * time.Minute

// Scheduler refreshes the current and the following month on a cron
// schedule. Runs never overlap.
type Scheduler struct {
	r       Refresher
	cron    *cron.Cron
	now     func() time.Time
	timeout time.Duration
}

// New returns a Scheduler running spec (standard 5-field cron syntax).
func New(r Refresher, spec string) (*Scheduler, error) {
	s := &Scheduler{
		r:       r,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		now:     time.Now,
		timeout: DefaultTimeout,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("refresh: bad schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	appLog.Info("refresh scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		appLog.Error("scheduled refresh failed", err)
	}
}

// RunOnce refreshes the current and next month. Both months are attempted
// even if the first fails; the first error is returned.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	months := Months(s.now())
	var first error
	for _, ym := range months {
		if err := s.r.Refresh(ctx, ym); err != nil {
			appLog.Error("refresh failed", err, "month", ym.String())
			if first == nil {
				first = err
			}
			continue
		}
		appLog.Debug("month refreshed", "month", ym.String())
	}
	return first
}

// Months returns the month containing now and the month after it.
func Months(now time.Time) []calendar.YearMonth {
	cur := calendar.YearMonth{Year: now.Year(), Month: now.Month()}
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return []calendar.YearMonth{cur, calendar.Of(next)}
}
