// Package courses turns raw course listings and form submissions into
// EventRecords for the calendar.
package courses

import "strings"

// UnknownType is the category of courses whose name is not in the table.
const UnknownType = "unknown"

// EventType is a course category: a stable key plus its display name.
type EventType struct {
	Key  string
	Name string
}

// EventTypes lists the categories in form order.
var EventTypes = []EventType{
	{"first_step", "Первый шаг"},
	{"happiness", "Счастье"},
	{"art_of_meditation", "Искусство медитации"},
	{"ayurvedic_cooking", "Здоровое питание"},
	{"art_of_silence", "Искусство тишины"},
	{"dsn", "DSN"},
	{"practices", "Поддерживающее занятие"},
	{"practices_vtp", "Поддерживающее занятие для VTP"},
	{"yoga", "Йога"},
	{"yoga_spine", "Йога для позвоночника"},
	{"yoga_joints", "Суставная йога"},
	{"satsang", "Песенный сатсанг"},
}

// recurringTypes may be submitted with a weekday schedule.
var recurringTypes = map[string]bool{
	"practices":     true,
	"practices_vtp": true,
	"yoga":          true,
	"yoga_joints":   true,
	"yoga_spine":    true,
}

var (
	nameByKey  = make(map[string]string, len(EventTypes))
	keyByLower = make(map[string]string, len(EventTypes))
)

func init() {
	for _, et := range EventTypes {
		nameByKey[et.Key] = et.Name
		keyByLower[strings.ToLower(et.Name)] = et.Key
	}
}

// TypeName returns the display name for a category key.
func TypeName(key string) (string, bool) {
	name, ok := nameByKey[key]
	return name, ok
}

// IsRecurringType reports whether key accepts a weekday schedule.
func IsRecurringType(key string) bool {
	return recurringTypes[key]
}

// CourseType maps a course name to its category key by case-insensitive
// exact match, or UnknownType.
func CourseType(name string) string {
	if key, ok := keyByLower[strings.ToLower(strings.TrimSpace(name))]; ok {
		return key
	}
	return UnknownType
}

// weekdayTokens accepts Russian and English short names.
var weekdayTokens = map[string]int{
	"пн": 1, "вт": 2, "ср": 3, "чт": 4, "пт": 5, "сб": 6, "вс": 7,
	"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
}

// WeekdayLabels are the form labels for weekdays 1..7.
var WeekdayLabels = [7]string{"пн", "вт", "ср", "чт", "пт", "сб", "вс"}

// ParseWeekday resolves a short weekday name to 1 (Monday) .. 7 (Sunday).
func ParseWeekday(token string) (int, bool) {
	wd, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	return wd, ok
}

// DefaultTeachers is the teacher list offered by the form, "Surname Name".
var DefaultTeachers = []string{
	"Артиш Анжелика",
	"Крылова Зинаида",
	"Кузьминич Алексей",
	"Пашевина Евгения",
	"Федорова Елена",
	"Федоров Олег",
	"Шумакова Ольга",
	"Яскевич Мира",
}
