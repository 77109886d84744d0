package courses

import "strings"

// ParseTeachers returns the surname of each teacher in a listing such as
// "Анжелика Артиш, Алексей Кузьминич".
func ParseTeachers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[len(fields)-1])
	}
	return out
}

// DisplayTeacher turns "Surname Name" into "Name Surname". Names that are
// not exactly two words are returned trimmed but otherwise unchanged.
func DisplayTeacher(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) != 2 {
		return strings.Join(fields, " ")
	}
	return fields[1] + " " + fields[0]
}

// JoinTeachers formats form selections the way the admin portal lists them.
func JoinTeachers(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, DisplayTeacher(n))
	}
	return strings.Join(out, ", ")
}
