package locale

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		start, end time.Time
		want       string
	}{
		{date(2026, 4, 29), date(2026, 5, 3), "29 апреля-3 мая"},
		{date(2026, 4, 1), time.Time{}, "1 апреля"},
		{date(2026, 4, 17), date(2026, 4, 19), "17-19 апреля"},
		{date(2026, 4, 17), date(2026, 4, 17), "17 апреля"},
		{date(2025, 12, 30), date(2026, 1, 2), "30 декабря-2 января"},
	}
	for _, tt := range tests {
		if got := FormatRange(tt.start, tt.end); got != tt.want {
			t.Errorf("FormatRange(%s, %s) = %q, want %q",
				tt.start.Format(time.DateOnly), tt.end.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestParseDates(t *testing.T) {
	tests := []struct {
		text string
		want []time.Time
	}{
		{"31 Октября-2 Ноября", []time.Time{date(2025, 10, 31), date(2025, 11, 2)}},
		{"17-19 Октября", []time.Time{date(2025, 10, 17), date(2025, 10, 19)}},
		{"19 Октября", []time.Time{date(2025, 10, 19)}},
		{"25–28 Октября", []time.Time{date(2025, 10, 25), date(2025, 10, 28)}},
		{"  3 ОКТЯБРЯ ", []time.Time{date(2025, 10, 3)}},
		{"1 октябрь", []time.Time{date(2025, 10, 1)}},
		{"30 Декабря - 2 Января", []time.Time{date(2025, 12, 30), date(2026, 1, 2)}},
	}
	for _, tt := range tests {
		got, err := ParseDates(tt.text, 2025)
		if err != nil {
			t.Errorf("ParseDates(%q) error: %v", tt.text, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseDates(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if !got[i].Equal(tt.want[i]) {
				t.Errorf("ParseDates(%q)[%d] = %s, want %s", tt.text, i,
					got[i].Format(time.DateOnly), tt.want[i].Format(time.DateOnly))
			}
		}
	}
}

func TestParseDatesErrors(t *testing.T) {
	for _, text := range []string{"garbage", "", "31 Брюмера", "32 Октября", "19-17 Октября", "Октября 19"} {
		_, err := ParseDates(text, 2025)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseDates(%q) = %v, want *FormatError", text, err)
			continue
		}
		if fe.Text != text {
			t.Errorf("FormatError.Text = %q, want %q", fe.Text, text)
		}
	}
}

func TestFormatThenParse(t *testing.T) {
	ranges := [][2]time.Time{
		{date(2026, 4, 29), date(2026, 5, 3)},
		{date(2026, 4, 17), date(2026, 4, 19)},
		{date(2026, 4, 1), {}},
	}
	for _, r := range ranges {
		label := FormatRange(r[0], r[1])
		got, err := ParseDates(label, 2026)
		if err != nil {
			t.Fatalf("ParseDates(%q): %v", label, err)
		}
		if !got[0].Equal(r[0]) {
			t.Errorf("%q: start %s, want %s", label, got[0].Format(time.DateOnly), r[0].Format(time.DateOnly))
		}
		if !r[1].IsZero() && !got[len(got)-1].Equal(r[1]) {
			t.Errorf("%q: end %s, want %s", label, got[len(got)-1].Format(time.DateOnly), r[1].Format(time.DateOnly))
		}
	}
}

func TestMonthNames(t *testing.T) {
	if got := Title(time.April); got != "Апрель" {
		t.Errorf("Title(April) = %q", got)
	}
	if got := Genitive(time.May); got != "мая" {
		t.Errorf("Genitive(May) = %q", got)
	}
	if m, ok := LookupMonth("НОЯБРЯ"); !ok || m != time.November {
		t.Errorf("LookupMonth(НОЯБРЯ) = %v, %v", m, ok)
	}
}
