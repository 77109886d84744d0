package ics

import (
	"time"

	"github.com/teambition/rrule-go"

	appLog "studiocal/internal/log"
)

// maxOccurrences caps a single RRULE expansion.
const maxOccurrences = 500

// Occurrence is one concrete instance of an Event.
type Occurrence struct {
	Event Event
	Start time.Time
	End   time.Time // exclusive
}

// Expand returns the occurrences of events that intersect [from, to).
// RRULE and EXDATE are honoured; rules that fail to parse keep only the
// base instance.
func Expand(events []Event, from, to time.Time) []Occurrence {
	var out []Occurrence
	for _, ev := range events {
		if ev.RawRRule == "" {
			if overlaps(ev.Start, ev.End, from, to) {
				out = append(out, Occurrence{Event: ev, Start: ev.Start, End: ev.End})
			}
			continue
		}

		r, err := rrule.StrToRRule(ev.RawRRule)
		if err != nil {
			appLog.Error("ics rrule parse failed", err, "uid", ev.UID, "rrule", ev.RawRRule)
			if overlaps(ev.Start, ev.End, from, to) {
				out = append(out, Occurrence{Event: ev, Start: ev.Start, End: ev.End})
			}
			continue
		}
		r.DTStart(ev.Start)

		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex.In(ev.Start.Location()))
		}

		dur := ev.End.Sub(ev.Start)
		// Step back by the duration so instances that began before from but
		// are still running are included.
		starts := set.Between(from.Add(-dur), to, true)
		if len(starts) > maxOccurrences {
			appLog.Warn("ics rrule truncated", "uid", ev.UID, "cap", maxOccurrences)
			starts = starts[:maxOccurrences]
		}
		for _, s := range starts {
			e := s.Add(dur)
			if ev.AllDay {
				e = s.AddDate(0, 0, int(dur.Hours()/24+0.5))
			}
			if overlaps(s, e, from, to) {
				out = append(out, Occurrence{Event: ev, Start: s, End: e})
			}
		}
	}
	return out
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aEnd.After(aStart) {
		// Zero-length instance: a point in time.
		return !aStart.Before(bStart) && aStart.Before(bEnd)
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
