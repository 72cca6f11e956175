// Package trips loads city trip files into an in-memory table and filters it.
package trips

import "github.com/verte-zerg/bikeshare/internal/model"

// Table is an ordered, read-only set of trips. Filtering returns a new Table
// and never touches the receiver.
type Table struct {
	rows []model.Trip
}

// NewTable copies rows into a Table.
func NewTable(rows []model.Trip) Table {
	out := make([]model.Trip, len(rows))
	copy(out, rows)
	return Table{rows: out}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in table order.
func (t Table) Rows() []model.Trip {
	out := make([]model.Trip, len(t.rows))
	copy(out, t.rows)
	return out
}

// Where returns the rows matching keep, preserving order.
func (t Table) Where(keep func(model.Trip) bool) Table {
	out := make([]model.Trip, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return Table{rows: out}
}

// Months returns the derived month of every row.
func (t Table) Months() []int {
	out := make([]int, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Month
	}
	return out
}

// Weekdays returns the derived weekday name of every row.
func (t Table) Weekdays() []string {
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Weekday
	}
	return out
}

// Hours returns the derived start hour of every row.
func (t Table) Hours() []int {
	out := make([]int, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Hour
	}
	return out
}

// Durations returns trip durations in seconds, skipping missing cells.
func (t Table) Durations() []float64 {
	out := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if row.HasDuration {
			out = append(out, row.DurationSec)
		}
	}
	return out
}

// StartStations returns non-empty start station names.
func (t Table) StartStations() []string {
	return t.strings(func(row model.Trip) string { return row.StartStation })
}

// EndStations returns non-empty end station names.
func (t Table) EndStations() []string {
	return t.strings(func(row model.Trip) string { return row.EndStation })
}

// UserTypes returns non-empty user types.
func (t Table) UserTypes() []string {
	return t.strings(func(row model.Trip) string { return row.UserType })
}

// Genders returns non-empty genders.
func (t Table) Genders() []string {
	return t.strings(func(row model.Trip) string { return row.Gender })
}

// BirthYears returns the birth years that are present.
func (t Table) BirthYears() []int {
	out := make([]int, 0, len(t.rows))
	for _, row := range t.rows {
		if row.HasBirthYear {
			out = append(out, row.BirthYear)
		}
	}
	return out
}

func (t Table) strings(field func(model.Trip) string) []string {
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if v := field(row); v != "" {
			out = append(out, v)
		}
	}
	return out
}
