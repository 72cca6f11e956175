package stats

import (
	"strconv"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// Extremes is a display-ready most/least common result for one column.
type Extremes struct {
	Label string
	// Sep joins tied values when printed.
	Sep  string
	Freq Frequency[string]
	Err  error
}

// TimeReport covers the busiest and quietest months, weekdays and hours.
// Month and Weekday are nil when the matching filter fixed a single value.
type TimeReport struct {
	Filter  model.Filter
	Month   *Extremes
	Weekday *Extremes
	Hour    Extremes
}

// StationReport covers start stations, end stations and station pairs.
type StationReport struct {
	Filter model.Filter
	Start  Extremes
	End    Extremes
	Trip   TripExtremes
}

// TripExtremes lists every start/end pair tied for the highest count,
// each rendered as "A to B".
type TripExtremes struct {
	Trips []string
	Count int
	Err   error
}

// DurationReport holds total and mean trip duration in seconds.
type DurationReport struct {
	Filter  model.Filter
	Total   float64
	Mean    float64
	MeanErr error
}

// UserReport holds user type counts and, for cities that record them,
// gender and birth year statistics.
type UserReport struct {
	Filter       model.Filter
	UserTypes    []ValueCount[string]
	Demographics *Demographics
}

// Demographics holds gender counts and birth year statistics.
type Demographics struct {
	Genders    []ValueCount[string]
	Earliest   int
	Latest     int
	BirthYears Extremes
	// Err is set when no row carries a birth year.
	Err error
}

type stationPair struct {
	start string
	end   string
}

// BuildTimeReport computes time-of-travel extremes for t.
func BuildTimeReport(t trips.Table, f model.Filter) TimeReport {
	report := TimeReport{Filter: f}
	if f.MonthAll() {
		month := extremesOf("month", ", ", t.Months(), model.MonthName)
		report.Month = &month
	}
	if f.DayAll() {
		weekday := extremesOf("day of week", ", ", t.Weekdays(), identity)
		report.Weekday = &weekday
	}
	report.Hour = extremesOf("hour", ", ", t.Hours(), strconv.Itoa)
	return report
}

// BuildStationReport computes station and trip extremes for t.
func BuildStationReport(t trips.Table, f model.Filter) StationReport {
	report := StationReport{
		Filter: f,
		Start:  extremesOf("start station", "\n", t.StartStations(), identity),
		End:    extremesOf("end station", "\n", t.EndStations(), identity),
	}
	pairs := make([]stationPair, 0, t.Len())
	for _, row := range t.Rows() {
		if row.StartStation == "" || row.EndStation == "" {
			continue
		}
		pairs = append(pairs, stationPair{start: row.StartStation, end: row.EndStation})
	}
	freq, err := FindExtremes(pairs)
	if err != nil {
		report.Trip.Err = err
		return report
	}
	report.Trip.Count = freq.MaxCount
	for _, p := range freq.Most {
		report.Trip.Trips = append(report.Trip.Trips, p.start+" to "+p.end)
	}
	return report
}

// BuildDurationReport computes total and mean trip duration for t.
func BuildDurationReport(t trips.Table, f model.Filter) DurationReport {
	durations := t.Durations()
	report := DurationReport{Filter: f, Total: TotalDuration(durations)}
	report.Mean, report.MeanErr = MeanDuration(durations)
	return report
}

// BuildUserReport computes user statistics for t. Demographics are only
// computed for cities whose files record them.
func BuildUserReport(t trips.Table, f model.Filter, city model.City) UserReport {
	report := UserReport{Filter: f, UserTypes: CountValues(t.UserTypes())}
	if !city.Demographics {
		return report
	}
	demo := &Demographics{Genders: CountValues(t.Genders())}
	years := t.BirthYears()
	demo.BirthYears = extremesOf("birth year", ", ", years, strconv.Itoa)
	if len(years) == 0 {
		demo.Err = ErrEmptyDistribution
	} else {
		demo.Earliest, demo.Latest = years[0], years[0]
		for _, y := range years[1:] {
			if y < demo.Earliest {
				demo.Earliest = y
			}
			if y > demo.Latest {
				demo.Latest = y
			}
		}
	}
	report.Demographics = demo
	return report
}

// TotalDuration sums seconds. The sum of no values is 0.
func TotalDuration(seconds []float64) float64 {
	var total float64
	for _, s := range seconds {
		total += s
	}
	return total
}

// MeanDuration averages seconds, failing with ErrEmptyDistribution on no values.
func MeanDuration(seconds []float64) (float64, error) {
	if len(seconds) == 0 {
		return 0, ErrEmptyDistribution
	}
	return TotalDuration(seconds) / float64(len(seconds)), nil
}

func extremesOf[V comparable](label, sep string, values []V, format func(V) string) Extremes {
	freq, err := FindExtremes(values)
	if err != nil {
		return Extremes{Label: label, Sep: sep, Err: err}
	}
	return Extremes{Label: label, Sep: sep, Freq: MapFrequency(freq, format)}
}

func identity(s string) string {
	return s
}
