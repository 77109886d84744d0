package locale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatError reports text that matches none of the known date shapes.
type FormatError struct {
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("locale: unrecognised date %q: %s", e.Text, e.Reason)
	}
	return fmt.Sprintf("locale: unrecognised date %q", e.Text)
}

const dash = `\s*[-–—]\s*`

type dateShape struct {
	name string
	re   *regexp.Regexp
	// build turns submatches into (startDay, startMonth, endDay, endMonth).
	// A zero endDay means a single date.
	build func(m []string) (sd int, sm string, ed int, em string)
}

// Tried in order; the first match wins.
var shapes = []dateShape{
	{
		name: "full range",
		re:   regexp.MustCompile(`(?i)^\s*(\d{1,2})\s+(\p{L}+)` + dash + `(\d{1,2})\s+(\p{L}+)\s*$`),
		build: func(m []string) (int, string, int, string) {
			return atoi(m[1]), m[2], atoi(m[3]), m[4]
		},
	},
	{
		name: "month range",
		re:   regexp.MustCompile(`(?i)^\s*(\d{1,2})` + dash + `(\d{1,2})\s+(\p{L}+)\s*$`),
		build: func(m []string) (int, string, int, string) {
			return atoi(m[1]), m[3], atoi(m[2]), m[3]
		},
	},
	{
		name: "single date",
		re:   regexp.MustCompile(`(?i)^\s*(\d{1,2})\s+(\p{L}+)\s*$`),
		build: func(m []string) (int, string, int, string) {
			return atoi(m[1]), m[2], 0, ""
		},
	},
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseDates reads a scraped date label into one or two dates in year.
// A range whose end month precedes its start month ends in year+1.
// Any other input yields a *FormatError.
func ParseDates(text string, year int) ([]time.Time, error) {
	for _, s := range shapes {
		m := s.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		sd, sm, ed, em := s.build(m)

		start, err := makeDate(text, year, sd, sm)
		if err != nil {
			return nil, err
		}
		if ed == 0 {
			return []time.Time{start}, nil
		}

		endYear := year
		if endMonth, ok := LookupMonth(em); ok && endMonth < start.Month() {
			endYear++
		}
		end, err := makeDate(text, endYear, ed, em)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, &FormatError{Text: text, Reason: "range ends before it starts"}
		}
		return []time.Time{start, end}, nil
	}
	return nil, &FormatError{Text: text}
}

func makeDate(text string, year, day int, monthName string) (time.Time, error) {
	month, ok := LookupMonth(monthName)
	if !ok {
		return time.Time{}, &FormatError{Text: text, Reason: "unknown month " + strings.ToLower(monthName)}
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || d.Month() != month {
		return time.Time{}, &FormatError{Text: text, Reason: fmt.Sprintf("no day %d in %s", day, Nominative(month))}
	}
	return d, nil
}
