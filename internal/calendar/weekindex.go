package calendar

import (
	"sync"
	"time"
)

// dayKey deliberately ignores the year: within one grid a (month, day)
// pair occurs at most once.
type dayKey struct {
	month time.Month
	day   int
}

// WeekIndex memoizes, per displayed month, which grid row (1-based) each
// date falls in. Entries are built once on first use and never evicted; the
// set of displayed months is small and fixed for the process.
//
// A WeekIndex is safe for concurrent use. Builds for a missing key happen
// under the write lock, so each key is populated exactly once.
type WeekIndex struct {
	mu    sync.RWMutex
	rows  map[YearMonth]map[dayKey]int
	grids map[YearMonth]Month
}

// NewWeekIndex returns an empty index.
func NewWeekIndex() *WeekIndex {
	return &WeekIndex{
		rows:  make(map[YearMonth]map[dayKey]int),
		grids: make(map[YearMonth]Month),
	}
}

// defaultIndex is the process-wide index used by the package-level helpers.
var defaultIndex = NewWeekIndex()

// DefaultIndex returns the process-wide WeekIndex.
func DefaultIndex() *WeekIndex {
	return defaultIndex
}

// WeekOf returns the grid row of d in ym's grid. ok is false when d's
// (month, day) is not shown in that grid.
func (w *WeekIndex) WeekOf(d time.Time, ym YearMonth) (week int, ok bool) {
	rows, _ := w.entry(ym)
	week, ok = rows[dayKey{month: d.Month(), day: d.Day()}]
	return week, ok
}

// Grid returns the cached grid for ym, building it on first use.
func (w *WeekIndex) Grid(ym YearMonth) Month {
	_, m := w.entry(ym)
	return m
}

// Len reports how many months are cached.
func (w *WeekIndex) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.rows)
}

func (w *WeekIndex) entry(ym YearMonth) (map[dayKey]int, Month) {
	w.mu.RLock()
	rows, ok := w.rows[ym]
	m := w.grids[ym]
	w.mu.RUnlock()
	if ok {
		return rows, m
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Another goroutine may have built it while we waited for the lock.
	if rows, ok := w.rows[ym]; ok {
		return rows, w.grids[ym]
	}

	m = Grid(ym)
	rows = make(map[dayKey]int, len(m.Weeks)*7)
	for i, week := range m.Weeks {
		for _, d := range week {
			rows[dayKey{month: d.Month(), day: d.Day()}] = i + 1
		}
	}
	w.rows[ym] = rows
	w.grids[ym] = m
	return rows, m
}
