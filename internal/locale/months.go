// Package locale holds the Russian month-name tables and the date label
// formatter and parser built on them.
package locale

import (
	"strings"
	"time"
)

// genitive month names, used after a day number: "29 апреля".
var genitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// nominative month names, used as month headings: "апрель".
var nominative = [12]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// monthByName maps every lower-case form of a month name to its month.
var monthByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 24)
	for i := range genitive {
		m[genitive[i]] = time.Month(i + 1)
		m[nominative[i]] = time.Month(i + 1)
	}
	return m
}()

// Genitive returns the genitive name of m, e.g. "мая".
func Genitive(m time.Month) string {
	return genitive[m-1]
}

// Nominative returns the nominative name of m, e.g. "май".
func Nominative(m time.Month) string {
	return nominative[m-1]
}

// Title returns the capitalised nominative name of m, e.g. "Май".
func Title(m time.Month) string {
	name := []rune(nominative[m-1])
	return strings.ToUpper(string(name[0])) + string(name[1:])
}

// LookupMonth resolves a month name in either case form, ignoring letter
// case.
func LookupMonth(name string) (time.Month, bool) {
	m, ok := monthByName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
