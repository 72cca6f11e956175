package trips

import "github.com/verte-zerg/bikeshare/internal/model"

// FilterByMonth keeps rows whose derived month equals month (1-12).
// A month of 0 keeps every row.
func FilterByMonth(t Table, month int) Table {
	if month == 0 {
		return t
	}
	return t.Where(func(row model.Trip) bool { return row.Month == month })
}

// FilterByWeekday keeps rows whose derived weekday equals the title-cased
// name. An empty name keeps every row.
func FilterByWeekday(t Table, weekday string) Table {
	if weekday == "" {
		return t
	}
	weekday = model.Title(weekday)
	return t.Where(func(row model.Trip) bool { return row.Weekday == weekday })
}

// Apply narrows t by the month then weekday selectors of f.
func Apply(t Table, f model.Filter) Table {
	t = FilterByMonth(t, f.MonthNumber())
	return FilterByWeekday(t, f.Weekday())
}
