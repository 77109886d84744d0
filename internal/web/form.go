package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studiocal/internal/courses"
)

const formDate = "2006-01-02"

// decodeForm reads the add-event form. It only checks that values are
// well-formed; FormValidator decides whether they are acceptable.
func decodeForm(r *http.Request) (courses.EventForm, error) {
	var f courses.EventForm
	if err := r.ParseForm(); err != nil {
		return f, fmt.Errorf("bad form: %w", err)
	}

	f.Type = strings.TrimSpace(r.PostForm.Get("type"))
	f.StartTime = strings.TrimSpace(r.PostForm.Get("start-time"))
	f.Place = strings.TrimSpace(r.PostForm.Get("place"))

	if v := strings.TrimSpace(r.PostForm.Get("start-date")); v != "" {
		d, err := time.Parse(formDate, v)
		if err != nil {
			return f, fmt.Errorf("bad start-date %q", v)
		}
		f.StartDate = d
	}
	if v := strings.TrimSpace(r.PostForm.Get("end-date")); v != "" {
		d, err := time.Parse(formDate, v)
		if err != nil {
			return f, fmt.Errorf("bad end-date %q", v)
		}
		f.EndDate = &d
	}

	for _, v := range r.PostForm["schedule"] {
		wd, err := weekday(v)
		if err != nil {
			return f, err
		}
		f.Schedule = append(f.Schedule, wd)
	}
	for _, v := range r.PostForm["teachers"] {
		if v = strings.TrimSpace(v); v != "" {
			f.Teachers = append(f.Teachers, v)
		}
	}
	return f, nil
}

// weekday accepts a weekday token ("ср", "wed") or its number 1..7.
func weekday(v string) (int, error) {
	v = strings.TrimSpace(v)
	if wd, ok := courses.ParseWeekday(v); ok {
		return wd, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	return 0, fmt.Errorf("bad schedule day %q", v)
}
