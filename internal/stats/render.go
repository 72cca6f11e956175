package stats

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/textfmt"
)

// Section titles printed before each report.
const (
	TimeTitle     = "Calculating The Most and Least Frequent Times of Travel..."
	StationTitle  = "Calculating The Most and Least Popular Stations and Trip..."
	DurationTitle = "Calculating Trip Duration..."
	UserTitle     = "Calculating User Stats..."
)

// Separator closes every section.
var Separator = strings.Repeat("-", 40)

// printer keeps the first write error so renderers can print line by line.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

// RenderHeader prints a section title and the active filter.
func RenderHeader(w io.Writer, title string, f model.Filter) error {
	p := &printer{w: w}
	p.printf("\n%s\n", title)
	p.printf("Filter: Month = %s and Day = %s\n\n", model.Title(orAll(f.Month)), model.Title(orAll(f.Day)))
	return p.err
}

// RenderFooter prints how long a section took and the separator.
func RenderFooter(w io.Writer, elapsed time.Duration) error {
	p := &printer{w: w}
	p.printf("\nThis took %s seconds.\n", textfmt.Seconds(elapsed.Seconds()))
	p.println(Separator)
	return p.err
}

// RenderTime prints a TimeReport.
func RenderTime(w io.Writer, r TimeReport) error {
	p := &printer{w: w}
	if r.Month != nil {
		p.extremes(*r.Month)
		p.println("")
	}
	if r.Weekday != nil {
		p.extremes(*r.Weekday)
		p.println("")
	}
	p.extremes(r.Hour)
	return p.err
}

// RenderStation prints a StationReport.
func RenderStation(w io.Writer, r StationReport) error {
	p := &printer{w: w}
	p.extremes(r.Start)
	p.println("")
	p.extremes(r.End)
	p.println("")
	if r.Trip.Err != nil {
		p.printf("Most common trip: %s\n", noData(r.Trip.Err))
		return p.err
	}
	p.printf("Most common trip: %s  Counts: %d\n", strings.Join(r.Trip.Trips, "\n"), r.Trip.Count)
	return p.err
}

// RenderDuration prints a DurationReport.
func RenderDuration(w io.Writer, r DurationReport) error {
	p := &printer{w: w}
	p.duration("Total travel time", r.Total)
	if r.MeanErr != nil {
		p.printf("Average travel time: %s\n", noData(r.MeanErr))
		return p.err
	}
	p.duration("Average travel time", r.Mean)
	return p.err
}

func (p *printer) duration(label string, seconds float64) {
	text, err := textfmt.Duration(seconds)
	if err != nil {
		text = err.Error()
	}
	p.printf("%s: %s\n", label, text)
}

// RenderUser prints a UserReport.
func RenderUser(w io.Writer, r UserReport) error {
	p := &printer{w: w}
	p.printf("User Type\n%s\n", countsLine(r.UserTypes))
	if r.Demographics == nil {
		return p.err
	}
	demo := r.Demographics
	p.printf("\nGender\n%s\n\n", countsLine(demo.Genders))
	p.println("Birth Year")
	if demo.Err != nil {
		p.printf("Earliest birth year: %s\n", noData(demo.Err))
		p.printf("Most recent birth year: %s\n", noData(demo.Err))
	} else {
		p.printf("Earliest birth year: %d\n", demo.Earliest)
		p.printf("Most recent birth year: %d\n", demo.Latest)
	}
	p.extremes(demo.BirthYears)
	return p.err
}

func (p *printer) extremes(e Extremes) {
	if e.Err != nil {
		p.printf("Most common %s: %s\n", e.Label, noData(e.Err))
		p.printf("Least common %s: %s\n", e.Label, noData(e.Err))
		return
	}
	p.printf("Most common %s: %s  Counts: %d\n", e.Label, strings.Join(e.Freq.Most, e.Sep), e.Freq.MaxCount)
	p.printf("Least common %s: %s  Counts: %d\n", e.Label, strings.Join(e.Freq.Least, e.Sep), e.Freq.MinCount)
}

func countsLine(counts []ValueCount[string]) string {
	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "%s: %d  ", c.Value, c.Count)
	}
	return b.String()
}

func noData(err error) string {
	if errors.Is(err, ErrEmptyDistribution) {
		return ErrEmptyDistribution.Error()
	}
	return err.Error()
}

func orAll(s string) string {
	if s == "" {
		return model.FilterAll
	}
	return s
}
