// Package model defines shared data structures.
package model

import "time"

// Trip is one bikeshare rental loaded from a city file.
type Trip struct {
	StartTime time.Time
	EndTime   time.Time

	DurationSec float64
	HasDuration bool

	StartStation string
	EndStation   string
	UserType     string
	Gender       string

	BirthYear    int
	HasBirthYear bool

	// Derived from StartTime at load time.
	Month   int
	Weekday string
	Hour    int
}

// City maps a selectable city name to its source file.
type City struct {
	Name string
	File string
	// Demographics is true when the file carries Gender and Birth Year.
	Demographics bool
}

// Filter is the month/day selection for one session iteration.
// Both fields hold a lower-case name or FilterAll.
type Filter struct {
	Month string
	Day   string
}

// FilterAll disables a month or day filter.
const FilterAll = "all"

// NoFilter returns a filter that keeps every row.
func NoFilter() Filter {
	return Filter{Month: FilterAll, Day: FilterAll}
}

// MonthAll reports whether the month filter is disabled.
func (f Filter) MonthAll() bool {
	return f.Month == "" || f.Month == FilterAll
}

// DayAll reports whether the weekday filter is disabled.
func (f Filter) DayAll() bool {
	return f.Day == "" || f.Day == FilterAll
}

// MonthNumber returns the 1-indexed month selected, or 0 for all months.
func (f Filter) MonthNumber() int {
	if f.MonthAll() {
		return 0
	}
	return MonthIndex(f.Month)
}

// Weekday returns the title-cased weekday selected, or "" for all days.
func (f Filter) Weekday() string {
	if f.DayAll() {
		return ""
	}
	return Title(f.Day)
}

// DefaultCities returns the built-in city table.
func DefaultCities() []City {
	return []City{
		{Name: "chicago", File: "chicago.csv", Demographics: true},
		{Name: "new york city", File: "new_york_city.csv", Demographics: true},
		{Name: "washington", File: "washington.csv", Demographics: false},
	}
}
