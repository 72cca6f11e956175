package trips

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/bikeshare/internal/model"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-01-01 09:07:57,2017-01-01 09:20:53,776,Canal St & Adams St,Clark St & Randolph St,Subscriber,Male,1989.0
2,2017-01-02 17:30:00,2017-01-02 17:40:00,600,Canal St & Adams St,Clark St & Randolph St,Customer,,
3,2017-02-03 08:00:00,2017-02-03 08:10:30,630.5,Clark St & Randolph St,Canal St & Adams St,Subscriber,Female,1975.0
4,2017-03-06 08:15:00,2017-03-06 08:20:00,300,Wells St & Elm St,Canal St & Adams St,Subscriber,Male,1992.0
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
1,2017-03-11 10:55:04,2017-03-11 11:05:43,639.141,Lincoln Memorial,15th & K St NW,Customer
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDerivesCalendarFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "chicago.csv", chicagoCSV)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", table.Len())
	}
	rows := table.Rows()
	first := rows[0]
	if first.Month != 1 || first.Weekday != "Sunday" || first.Hour != 9 {
		t.Fatalf("unexpected derived fields: month=%d weekday=%s hour=%d", first.Month, first.Weekday, first.Hour)
	}
	if first.BirthYear != 1989 || !first.HasBirthYear {
		t.Fatalf("expected birth year 1989, got %d (%v)", first.BirthYear, first.HasBirthYear)
	}
	if first.EndTime.IsZero() {
		t.Fatalf("expected end time to be parsed")
	}
	if rows[1].HasBirthYear || rows[1].Gender != "" {
		t.Fatalf("expected missing demographics on row 2: %+v", rows[1])
	}
	if rows[2].DurationSec != 630.5 {
		t.Fatalf("expected fractional duration, got %v", rows[2].DurationSec)
	}
	if got := table.Genders(); len(got) != 3 {
		t.Fatalf("expected 3 genders, got %v", got)
	}
	if got := table.BirthYears(); len(got) != 3 {
		t.Fatalf("expected 3 birth years, got %v", got)
	}
}

func TestLoadWithoutDemographicColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "washington.csv", washingtonCSV)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if len(table.Genders()) != 0 || len(table.BirthYears()) != 0 {
		t.Fatalf("expected no demographics")
	}
	if got := table.Durations(); len(got) != 2 || got[0] != 489.066 {
		t.Fatalf("unexpected durations: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %T", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadCityReportsCityName(t *testing.T) {
	city := model.City{Name: "chicago", File: "chicago.csv", Demographics: true}
	_, err := LoadCity(t.TempDir(), city, model.NoFilter())
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
	if srcErr.City != "chicago" {
		t.Fatalf("expected city on error, got %q", srcErr.City)
	}
}

func TestLoadRejectsMissingColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "Start Time,Trip Duration\n2017-01-01 00:00:00,10\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing required columns")
	}
}

func TestLoadRejectsBadTimestamp(t *testing.T) {
	content := `Start Time,Trip Duration,Start Station,End Station,User Type
yesterday,10,A,B,Subscriber
`
	path := writeFile(t, t.TempDir(), "bad.csv", content)
	_, err := Load(path)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %v", err)
	}
	if rowErr.Line != 2 || rowErr.Column != ColStartTime {
		t.Fatalf("unexpected row error: %+v", rowErr)
	}
}

func TestLoadCityAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chicago.csv", chicagoCSV)
	city := model.City{Name: "chicago", File: "chicago.csv", Demographics: true}

	table, err := LoadCity(dir, city, model.Filter{Month: "january", Day: "monday"})
	if err != nil {
		t.Fatalf("load city: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}
	if table.Rows()[0].Hour != 17 {
		t.Fatalf("unexpected row: %+v", table.Rows()[0])
	}

	empty, err := LoadCity(dir, city, model.Filter{Month: "june", Day: model.FilterAll})
	if err != nil {
		t.Fatalf("empty filter result must not fail: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected empty table, got %d rows", empty.Len())
	}
}

func TestLoadTreatsNAMarkersAsMissing(t *testing.T) {
	content := `Start Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
2017-01-02 08:00:00,NaN,A,B,Subscriber,NA,NaN
2017-01-02 09:00:00,600,A,B,N/A,Male,1990.0
2017-01-02 10:00:00,nan,A,B,Customer,,nan
`
	path := writeFile(t, t.TempDir(), "na.csv", content)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if d := table.Durations(); len(d) != 1 || d[0] != 600 {
		t.Fatalf("expected only the 600s duration, got %v", d)
	}
	if y := table.BirthYears(); len(y) != 1 || y[0] != 1990 {
		t.Fatalf("expected only the 1990 birth year, got %v", y)
	}
	if g := table.Genders(); len(g) != 1 || g[0] != "Male" {
		t.Fatalf("expected only the Male gender, got %v", g)
	}
	if u := table.UserTypes(); len(u) != 2 {
		t.Fatalf("expected N/A user type to be skipped, got %v", u)
	}
	first := table.Rows()[0]
	if first.HasDuration || first.HasBirthYear {
		t.Fatalf("NaN cells must stay missing: %+v", first)
	}
}

func TestLoadRejectsInfiniteValues(t *testing.T) {
	cases := []struct {
		row    string
		column string
	}{
		{"2017-01-02 08:00:00,Inf,A,B,Subscriber,Male,1990", ColTripDuration},
		{"2017-01-02 08:00:00,600,A,B,Subscriber,Male,-inf", ColBirthYear},
	}
	for _, tc := range cases {
		content := "Start Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n" + tc.row + "\n"
		path := writeFile(t, t.TempDir(), "inf.csv", content)
		_, err := Load(path)
		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			t.Fatalf("expected RowError for %q, got %v", tc.row, err)
		}
		if rowErr.Line != 2 || rowErr.Column != tc.column {
			t.Fatalf("unexpected row error: %+v", rowErr)
		}
	}
}

func TestSourcePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "c.csv")
	if got := SourcePath("data", model.City{File: abs}); got != abs {
		t.Fatalf("absolute file must be kept, got %q", got)
	}
	if got := SourcePath("data", model.City{File: "chicago.csv"}); got != filepath.Join("data", "chicago.csv") {
		t.Fatalf("relative file must be joined, got %q", got)
	}
}
