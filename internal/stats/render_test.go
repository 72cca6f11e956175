package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

func TestRenderHeaderAndFooter(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHeader(&buf, TimeTitle, model.Filter{Month: "march", Day: model.FilterAll}); err != nil {
		t.Fatalf("render header: %v", err)
	}
	want := "\n" + TimeTitle + "\nFilter: Month = March and Day = All\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected header: %q", buf.String())
	}

	buf.Reset()
	if err := RenderFooter(&buf, 1500*time.Millisecond); err != nil {
		t.Fatalf("render footer: %v", err)
	}
	if buf.String() != "\nThis took 1.5 seconds.\n"+Separator+"\n" {
		t.Fatalf("unexpected footer: %q", buf.String())
	}

	buf.Reset()
	if err := RenderFooter(&buf, 50*time.Microsecond); err != nil {
		t.Fatalf("render footer: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\nThis took 5e-05 seconds.\n") {
		t.Fatalf("unexpected footer for short section: %q", buf.String())
	}
}

func TestRenderTime(t *testing.T) {
	table := trips.NewTable([]model.Trip{
		trip("2017-01-02 08:00:00", "A", "B"),
		trip("2017-01-03 08:00:00", "A", "B"),
		trip("2017-02-06 09:00:00", "A", "B"),
		trip("2017-03-07 10:00:00", "A", "B"),
	})
	var buf bytes.Buffer
	if err := RenderTime(&buf, BuildTimeReport(table, model.Filter{Month: model.FilterAll, Day: "tuesday"})); err != nil {
		t.Fatalf("render time: %v", err)
	}
	want := strings.Join([]string{
		"Most common month: January  Counts: 2",
		"Least common month: February, March  Counts: 1",
		"",
		"Most common hour: 8  Counts: 2",
		"Least common hour: 9, 10  Counts: 1",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected time output:\n%s", buf.String())
	}
}

func TestRenderStation(t *testing.T) {
	table := trips.NewTable([]model.Trip{
		trip("2017-01-02 08:00:00", "X", "Y"),
		trip("2017-01-02 09:00:00", "X", "Y"),
		trip("2017-01-02 10:00:00", "Z", "W"),
	})
	var buf bytes.Buffer
	if err := RenderStation(&buf, BuildStationReport(table, model.NoFilter())); err != nil {
		t.Fatalf("render station: %v", err)
	}
	out := buf.String()
	for _, line := range []string{
		"Most common start station: X  Counts: 2",
		"Least common start station: Z  Counts: 1",
		"Most common end station: Y  Counts: 2",
		"Most common trip: X to Y  Counts: 2",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Fatalf("missing %q in output:\n%s", line, out)
		}
	}
}

func TestRenderEmptyReports(t *testing.T) {
	empty := trips.NewTable(nil)
	var buf bytes.Buffer
	if err := RenderDuration(&buf, BuildDurationReport(empty, model.NoFilter())); err != nil {
		t.Fatalf("render duration: %v", err)
	}
	want := "Total travel time: 0:00:00\nAverage travel time: no data for this filter\n"
	if buf.String() != want {
		t.Fatalf("unexpected duration output: %q", buf.String())
	}

	buf.Reset()
	if err := RenderStation(&buf, BuildStationReport(empty, model.NoFilter())); err != nil {
		t.Fatalf("render station: %v", err)
	}
	if !strings.Contains(buf.String(), "Most common start station: no data for this filter") ||
		!strings.Contains(buf.String(), "Most common trip: no data for this filter") {
		t.Fatalf("unexpected empty station output:\n%s", buf.String())
	}
}

func TestRenderDuration(t *testing.T) {
	rows := []model.Trip{
		{DurationSec: 86400, HasDuration: true},
		{DurationSec: 3601, HasDuration: true},
	}
	var buf bytes.Buffer
	if err := RenderDuration(&buf, BuildDurationReport(trips.NewTable(rows), model.NoFilter())); err != nil {
		t.Fatalf("render duration: %v", err)
	}
	want := "Total travel time: 1 day, 1:00:01\nAverage travel time: 12:30:00.500000\n"
	if buf.String() != want {
		t.Fatalf("unexpected duration output: %q", buf.String())
	}
}

func TestRenderDurationOutOfRange(t *testing.T) {
	rows := []model.Trip{{DurationSec: math.Inf(1), HasDuration: true}}
	var buf bytes.Buffer
	if err := RenderDuration(&buf, BuildDurationReport(trips.NewTable(rows), model.NoFilter())); err != nil {
		t.Fatalf("render duration: %v", err)
	}
	want := "Total travel time: duration out of range: +Inf\nAverage travel time: duration out of range: +Inf\n"
	if buf.String() != want {
		t.Fatalf("unexpected duration output: %q", buf.String())
	}
}

func TestRenderUser(t *testing.T) {
	rows := []model.Trip{
		{UserType: "Subscriber", Gender: "Male", BirthYear: 1989, HasBirthYear: true},
		{UserType: "Customer", Gender: "Female", BirthYear: 1975, HasBirthYear: true},
		{UserType: "Subscriber", Gender: "Male", BirthYear: 1989, HasBirthYear: true},
	}
	table := trips.NewTable(rows)

	var buf bytes.Buffer
	washington := model.City{Name: "washington"}
	if err := RenderUser(&buf, BuildUserReport(table, model.NoFilter(), washington)); err != nil {
		t.Fatalf("render user: %v", err)
	}
	if buf.String() != "User Type\nSubscriber: 2  Customer: 1  \n" {
		t.Fatalf("unexpected output without demographics: %q", buf.String())
	}

	buf.Reset()
	chicago := model.City{Name: "chicago", Demographics: true}
	if err := RenderUser(&buf, BuildUserReport(table, model.NoFilter(), chicago)); err != nil {
		t.Fatalf("render user: %v", err)
	}
	want := strings.Join([]string{
		"User Type",
		"Subscriber: 2  Customer: 1  ",
		"",
		"Gender",
		"Male: 2  Female: 1  ",
		"",
		"Birth Year",
		"Earliest birth year: 1975",
		"Most recent birth year: 1989",
		"Most common birth year: 1989  Counts: 2",
		"Least common birth year: 1975  Counts: 1",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output with demographics:\n%q", buf.String())
	}
}
