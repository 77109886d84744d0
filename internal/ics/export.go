package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"studiocal/internal/model"
)

// ProductID identifies exported calendars.
const ProductID = "-//studiocal//Course Calendar//RU"

// uidNamespace scopes the name-based UIDs of exported events.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("studiocal/events"))

// EventUID returns a stable UID for an event: the same name, dates and
// place always map to the same UID across exports.
func EventUID(e model.EventRecord) string {
	key := strings.Join([]string{
		e.Name,
		e.StartDate.Format("20060102"),
		e.LastDate().Format("20060102"),
		e.Place,
		e.Time,
	}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@studiocal"
}

// Export renders events as an iCalendar document of all-day events.
// stamp is written as DTSTAMP.
func Export(name string, events []model.EventRecord, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, e := range events {
		ev := cal.AddEvent(EventUID(e))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Name)
		if e.Place != "" {
			ev.SetLocation(e.Place)
		}
		ev.SetAllDayStartAt(e.StartDate)
		ev.SetAllDayEndAt(e.LastDate().AddDate(0, 0, 1))

		var desc []string
		if e.Time != "" {
			desc = append(desc, e.Time)
		}
		if e.TeachersText != "" {
			desc = append(desc, e.TeachersText)
		} else if len(e.Teachers) > 0 {
			desc = append(desc, strings.Join(e.Teachers, ", "))
		}
		if len(desc) > 0 {
			ev.SetDescription(strings.Join(desc, "\n"))
		}
	}
	return cal.Serialize()
}
