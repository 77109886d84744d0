package refresh

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"studiocal/internal/calendar"
)

type recorder struct {
	mu   sync.Mutex
	seen []calendar.YearMonth
	fail map[calendar.YearMonth]error
}

func (r *recorder) Refresh(_ context.Context, ym calendar.YearMonth) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, ym)
	return r.fail[ym]
}

func TestMonthsYearRollover(t *testing.T) {
	got := Months(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
	want := []calendar.YearMonth{{Year: 2025, Month: time.December}, {Year: 2026, Month: time.January}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Months = %v, want %v", got, want)
	}
}

func TestRunOnceAttemptsBothMonths(t *testing.T) {
	oct := calendar.YearMonth{Year: 2026, Month: time.October}
	nov := calendar.YearMonth{Year: 2026, Month: time.November}
	boom := errors.New("portal down")
	r := &recorder{fail: map[calendar.YearMonth]error{oct: boom}}

	s, err := New(r, "0 */6 * * *")
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC) }

	if err := s.RunOnce(context.Background()); !errors.Is(err, boom) {
		t.Errorf("RunOnce err = %v, want %v", err, boom)
	}
	if want := []calendar.YearMonth{oct, nov}; !reflect.DeepEqual(r.seen, want) {
		t.Errorf("refreshed %v, want %v", r.seen, want)
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	if _, err := New(&recorder{}, "every tuesday"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestStartStop(t *testing.T) {
	s, err := New(&recorder{}, "@every 1h")
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	s.Stop()
}
