package model

import "time"

// Course is the raw course shape as it comes from the admin portal and as
// manual entries are stored on disk. Date holds a human label such as
// "31 Октября-2 Ноября"; it is parsed into concrete dates on load.
type Course struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Place    string `json:"place"`
	Teachers string `json:"teachers,omitempty"`
	Time     string `json:"time,omitempty"`

	// Provenance from the admin portal; not interpreted by the layout.
	NumPayments *int   `json:"num_payments,omitempty"`
	Status      string `json:"status,omitempty"`
}

// EventRecord is a course occurrence with concrete dates, ready for layout.
type EventRecord struct {
	Name string
	// Type is a category key such as "happiness" or "unknown".
	Type string

	// StartDate / EndDate are UTC midnights. A zero EndDate means a
	// single-day event.
	StartDate time.Time
	EndDate   time.Time

	Place    string
	Teachers []string // surnames, in listing order
	Time     string   // "HH:MM" or empty

	DatesText    string
	TeachersText string
	NumPayments  *int
	Status       string
}

// LastDate returns EndDate, or StartDate for single-day events.
func (e EventRecord) LastDate() time.Time {
	if e.EndDate.IsZero() {
		return e.StartDate
	}
	return e.EndDate
}
