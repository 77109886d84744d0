package courses

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"studiocal/internal/locale"
	"studiocal/internal/model"
	"studiocal/internal/recur"
)

// EventForm is a submitted "add event" form after decoding. Dates are UTC
// midnights.
type EventForm struct {
	Type      string     `validate:"required,eventtype"`
	StartDate time.Time  `validate:"required"`
	EndDate   *time.Time `validate:"omitempty,gtefield=StartDate"`
	Schedule  []int      `validate:"omitempty,dive,min=1,max=7"`
	StartTime string     `validate:"omitempty,datetime=15:04"`
	Place     string     `validate:"required"`
	Teachers  []string   `validate:"omitempty,dive,teacher"`
}

// End returns the end date or the zero time.
func (f EventForm) End() time.Time {
	if f.EndDate == nil {
		return time.Time{}
	}
	return *f.EndDate
}

// Recurring reports whether the form describes a weekday schedule rather
// than a single event.
func (f EventForm) Recurring() bool {
	return IsRecurringType(f.Type) && len(f.Schedule) > 0
}

// FormValidator checks EventForms against the category table and the
// configured teacher list.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator builds a validator accepting the given teachers. An
// empty list accepts DefaultTeachers.
func NewFormValidator(teachers []string) *FormValidator {
	if len(teachers) == 0 {
		teachers = DefaultTeachers
	}
	known := make(map[string]bool, len(teachers))
	for _, t := range teachers {
		known[t] = true
	}

	v := validator.New()
	mustRegister(v, "eventtype", func(fl validator.FieldLevel) bool {
		_, ok := TypeName(fl.Field().String())
		return ok
	})
	mustRegister(v, "teacher", func(fl validator.FieldLevel) bool {
		return known[fl.Field().String()]
	})
	return &FormValidator{v: v}
}

// mustRegister panics if a custom rule cannot be registered.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("courses: register %q rule: %v", tag, err))
	}
}

// ValidationError lists the offending fields of a form.
type ValidationError struct {
	Fields map[string]string // field name -> failed rule
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range []string{"Type", "StartDate", "EndDate", "Schedule", "StartTime", "Place", "Teachers"} {
		if rule, ok := e.Fields[name]; ok {
			parts = append(parts, name+": "+rule)
		}
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Validate returns a *ValidationError when f is not acceptable.
func (fv *FormValidator) Validate(f EventForm) error {
	err := fv.v.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := fe.StructField()
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i] // "Schedule[1]" -> "Schedule"
		}
		if _, seen := ve.Fields[name]; !seen {
			ve.Fields[name] = fe.Tag()
		}
	}
	return ve
}

// MakeEvent converts a single-event form into a stored course entry.
func MakeEvent(f EventForm) model.Course {
	name, _ := TypeName(f.Type)
	return model.Course{
		Name:     name,
		Date:     locale.FormatRange(f.StartDate, f.End()),
		Place:    f.Place,
		Teachers: JoinTeachers(f.Teachers),
		Time:     f.StartTime,
	}
}

// MakeRecurringEvents expands the form's weekday schedule into one-day
// course entries.
func MakeRecurringEvents(f EventForm) ([]model.Course, error) {
	dated, err := recurringEntries(f)
	if err != nil {
		return nil, err
	}
	out := make([]model.Course, 0, len(dated))
	for _, d := range dated {
		out = append(out, d.course)
	}
	return out, nil
}

// datedCourse is an entry together with the date its label names.
type datedCourse struct {
	date   time.Time
	course model.Course
}

func recurringEntries(f EventForm) ([]datedCourse, error) {
	dates, err := recur.Expand(f.Schedule, f.StartDate, f.End())
	if err != nil {
		return nil, fmt.Errorf("courses: expand schedule: %w", err)
	}

	name, _ := TypeName(f.Type)
	teachers := JoinTeachers(f.Teachers)

	out := make([]datedCourse, 0, len(dates))
	for _, d := range dates {
		out = append(out, datedCourse{date: d, course: model.Course{
			Name:     name,
			Date:     locale.FormatRange(d, time.Time{}),
			Place:    f.Place,
			Teachers: teachers,
			Time:     f.StartTime,
		}})
	}
	return out, nil
}
