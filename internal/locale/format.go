package locale

import (
	"fmt"
	"time"
)

// FormatRange renders a date or an inclusive date range:
//
//	29 апреля         single day (zero end, or end equal to start)
//	17-19 апреля      same month
//	29 апреля-3 мая   different months
func FormatRange(start, end time.Time) string {
	if end.IsZero() || sameDay(start, end) {
		return fmt.Sprintf("%d %s", start.Day(), Genitive(start.Month()))
	}
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d %s", start.Day(), end.Day(), Genitive(start.Month()))
	}
	return fmt.Sprintf("%d %s-%d %s", start.Day(), Genitive(start.Month()), end.Day(), Genitive(end.Month()))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
