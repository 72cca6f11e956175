package model

import (
	"strings"
	"unicode"
)

// Month and weekday names are fixed English tables so filtering and display
// never depend on the host locale.

// MonthNames lists every month, January first.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FilterMonths lists the months a user may filter by.
var FilterMonths = []string{"january", "february", "march", "april", "may", "june"}

// WeekdayNames lists the weekdays indexed by time.Weekday.
var WeekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// FilterDays lists the weekdays a user may filter by, Monday first.
var FilterDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// MonthIndex returns the 1-indexed position of name in FilterMonths, or 0.
func MonthIndex(name string) int {
	name = strings.ToLower(name)
	for i, m := range FilterMonths {
		if m == name {
			return i + 1
		}
	}
	return 0
}

// MonthName returns the English name for a 1-indexed month.
func MonthName(month int) string {
	if month < 1 || month > len(MonthNames) {
		return ""
	}
	return MonthNames[month-1]
}

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	runes := []rune(s)
	start := true
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if start {
				runes[i] = unicode.ToUpper(r)
			} else {
				runes[i] = unicode.ToLower(r)
			}
			start = false
			continue
		}
		start = true
	}
	return string(runes)
}
