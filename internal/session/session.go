// Package session drives one or more report runs: filter selection, loading,
// and the four statistics sections.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/prompt"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

const greeting = "Hello! Let's explore some US bikeshare data!\n"

// Session is the interactive report loop.
type Session struct {
	DataDir string
	Cities  []model.City
	In      io.Reader
	Out     io.Writer
}

// Run prompts for filters, prints every report and repeats until the user
// declines to restart.
func (s *Session) Run() error {
	p := prompt.New(s.In, s.Out)
	for iteration := 1; ; iteration++ {
		city, filter, err := s.askFilters(p)
		if err != nil {
			return err
		}
		log.Debug().Int("iteration", iteration).Str("city", city.Name).Str("month", filter.Month).Str("day", filter.Day).Msg("filters selected")
		if err := RunReports(s.Out, s.DataDir, city, filter); err != nil {
			return err
		}
		answer, err := p.ReadLine(prompt.RestartPrompt)
		if err != nil {
			if errors.Is(err, prompt.ErrInputClosed) {
				return nil
			}
			return err
		}
		if prompt.Normalize(answer) != "yes" {
			return nil
		}
	}
}

func (s *Session) askFilters(p *prompt.Prompter) (model.City, model.Filter, error) {
	if _, err := fmt.Fprint(s.Out, greeting+"\n"); err != nil {
		return model.City{}, model.Filter{}, err
	}
	name, err := p.Ask(prompt.CityQuestion(s.Cities))
	if err != nil {
		return model.City{}, model.Filter{}, err
	}
	city, err := FindCity(s.Cities, name)
	if err != nil {
		return model.City{}, model.Filter{}, err
	}

	mode, err := p.Ask(prompt.FilterQuestion())
	if err != nil {
		return model.City{}, model.Filter{}, err
	}
	filter := model.NoFilter()
	if mode == prompt.ModeMonth || mode == prompt.ModeBoth {
		if filter.Month, err = p.Ask(prompt.MonthQuestion()); err != nil {
			return model.City{}, model.Filter{}, err
		}
	}
	if mode == prompt.ModeDay || mode == prompt.ModeBoth {
		if filter.Day, err = p.Ask(prompt.DayQuestion()); err != nil {
			return model.City{}, model.Filter{}, err
		}
	}
	if _, err := fmt.Fprintln(s.Out, stats.Separator); err != nil {
		return model.City{}, model.Filter{}, err
	}
	return city, filter, nil
}

// FindCity looks a city up by case-insensitive name.
func FindCity(cities []model.City, name string) (model.City, error) {
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return model.City{}, fmt.Errorf("unknown city %q", name)
}

// ParseFilter validates month and day selectors given on the command line.
// Empty values mean all.
func ParseFilter(month, day string) (model.Filter, error) {
	filter := model.NoFilter()
	if month = prompt.Normalize(strings.TrimSpace(month)); month != "" && month != model.FilterAll {
		if !prompt.MonthQuestion().Valid(month) {
			return model.Filter{}, fmt.Errorf("invalid month %q (use all or one of: %s)", month, strings.Join(model.FilterMonths, ", "))
		}
		filter.Month = month
	}
	if day = prompt.Normalize(strings.TrimSpace(day)); day != "" && day != model.FilterAll {
		if !prompt.DayQuestion().Valid(day) {
			return model.Filter{}, fmt.Errorf("invalid day %q (use all or one of: %s)", day, strings.Join(model.FilterDays, ", "))
		}
		filter.Day = day
	}
	return filter, nil
}

// RunReports loads the city's trips and prints the time, station, duration
// and user sections in order.
func RunReports(w io.Writer, dataDir string, city model.City, filter model.Filter) error {
	table, err := trips.LoadCity(dataDir, city, filter)
	if err != nil {
		return err
	}
	for _, sec := range Sections(city) {
		if err := stats.RenderHeader(w, sec.Title, filter); err != nil {
			return err
		}
		started := time.Now()
		if err := sec.Render(w, table, filter); err != nil {
			return err
		}
		elapsed := time.Since(started)
		log.Debug().Str("section", sec.Name).Dur("took", elapsed).Msg("rendered section")
		if err := stats.RenderFooter(w, elapsed); err != nil {
			return err
		}
	}
	return nil
}

// Section is one statistics report.
type Section struct {
	Name   string
	Title  string
	Render func(w io.Writer, t trips.Table, f model.Filter) error
}

// Sections returns the report sections for city in display order.
func Sections(city model.City) []Section {
	return []Section{
		{Name: "Time", Title: stats.TimeTitle, Render: func(w io.Writer, t trips.Table, f model.Filter) error {
			return stats.RenderTime(w, stats.BuildTimeReport(t, f))
		}},
		{Name: "Stations", Title: stats.StationTitle, Render: func(w io.Writer, t trips.Table, f model.Filter) error {
			return stats.RenderStation(w, stats.BuildStationReport(t, f))
		}},
		{Name: "Duration", Title: stats.DurationTitle, Render: func(w io.Writer, t trips.Table, f model.Filter) error {
			return stats.RenderDuration(w, stats.BuildDurationReport(t, f))
		}},
		{Name: "Users", Title: stats.UserTitle, Render: func(w io.Writer, t trips.Table, f model.Filter) error {
			return stats.RenderUser(w, stats.BuildUserReport(t, f, city))
		}},
	}
}
