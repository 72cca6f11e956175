package trips

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// Column names in city files.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

var requiredColumns = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation, ColUserType}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"1/2/2006 15:04",
}

// naValues are cell contents read as missing, matching the default NA
// markers of common dataframe CSV readers.
var naValues = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// cell trims a raw value and returns "" for missing markers.
func cell(raw string) string {
	v := strings.TrimSpace(raw)
	if _, ok := naValues[v]; ok {
		return ""
	}
	return v
}

// csvTrip is one raw row; every cell is decoded as text and converted
// afterwards so empty optional cells stay missing instead of failing.
type csvTrip struct {
	StartTime    string `csv:"Start Time"`
	EndTime      string `csv:"End Time"`
	TripDuration string `csv:"Trip Duration"`
	StartStation string `csv:"Start Station"`
	EndStation   string `csv:"End Station"`
	UserType     string `csv:"User Type"`
	Gender       string `csv:"Gender"`
	BirthYear    string `csv:"Birth Year"`
}

// SourceError reports a city file that could not be read.
type SourceError struct {
	City string
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.City == "" {
		return fmt.Sprintf("failed to read trip data %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read trip data for %s (%s): %v", e.City, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// RowError reports a malformed cell. Line is 1-indexed and counts the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: invalid %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// SourcePath returns the file read for city. Absolute files are used as is,
// relative ones are resolved under dataDir.
func SourcePath(dataDir string, city model.City) string {
	if filepath.IsAbs(city.File) {
		return city.File
	}
	return filepath.Join(dataDir, city.File)
}

// LoadCity reads the file mapped to city under dataDir and applies filter.
// An empty result is valid.
func LoadCity(dataDir string, city model.City, filter model.Filter) (Table, error) {
	path := SourcePath(dataDir, city)
	table, err := Load(path)
	if err != nil {
		var srcErr *SourceError
		if errors.As(err, &srcErr) {
			srcErr.City = city.Name
		}
		return Table{}, err
	}
	filtered := Apply(table, filter)
	log.Debug().
		Str("city", city.Name).
		Str("month", filter.Month).
		Str("day", filter.Day).
		Int("rows", table.Len()).
		Int("filtered", filtered.Len()).
		Msg("applied filters")
	return filtered, nil
}

// Load reads every row of a trip file and derives month, weekday and hour.
func Load(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, &SourceError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	if info, err := file.Stat(); err == nil {
		log.Debug().Str("path", path).Str("size", humanize.Bytes(uint64(info.Size()))).Msg("opened trip file")
	}

	started := time.Now()
	reader := &headerReader{r: csv.NewReader(file)}
	// Allow rows with missing trailing cells.
	reader.r.FieldsPerRecord = -1

	var raw []csvTrip
	if err := gocsv.UnmarshalCSV(reader, &raw); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return Table{}, &SourceError{Path: path, Err: fmt.Errorf("file is empty")}
		}
		return Table{}, &SourceError{Path: path, Err: fmt.Errorf("failed to parse csv: %w", err)}
	}
	if err := checkColumns(reader.header); err != nil {
		return Table{}, &SourceError{Path: path, Err: err}
	}

	rows := make([]model.Trip, 0, len(raw))
	for i, r := range raw {
		trip, err := convertRow(r, i+2)
		if err != nil {
			return Table{}, &SourceError{Path: path, Err: err}
		}
		rows = append(rows, trip)
	}
	log.Debug().Str("path", path).Int("rows", len(rows)).Dur("took", time.Since(started)).Msg("loaded trips")
	return Table{rows: rows}, nil
}

func convertRow(r csvTrip, line int) (model.Trip, error) {
	start, err := parseTimestamp(r.StartTime)
	if err != nil {
		return model.Trip{}, &RowError{Line: line, Column: ColStartTime, Err: err}
	}
	trip := model.Trip{
		StartTime:    start,
		StartStation: cell(r.StartStation),
		EndStation:   cell(r.EndStation),
		UserType:     cell(r.UserType),
		Gender:       cell(r.Gender),
		Month:        int(start.Month()),
		Weekday:      model.WeekdayNames[start.Weekday()],
		Hour:         start.Hour(),
	}
	if end := cell(r.EndTime); end != "" {
		if parsed, err := parseTimestamp(end); err == nil {
			trip.EndTime = parsed
		}
	}
	if d := cell(r.TripDuration); d != "" {
		secs, err := parseFinite(d)
		if err != nil {
			return model.Trip{}, &RowError{Line: line, Column: ColTripDuration, Err: err}
		}
		trip.DurationSec = secs
		trip.HasDuration = true
	}
	if y := cell(r.BirthYear); y != "" {
		year, err := parseFinite(y)
		if err != nil {
			return model.Trip{}, &RowError{Line: line, Column: ColBirthYear, Err: err}
		}
		trip.BirthYear = int(year)
		trip.HasBirthYear = true
	}
	return trip, nil
}

func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", value)
	}
	return v, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func checkColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = struct{}{}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// headerReader remembers the header row handed to gocsv.
type headerReader struct {
	r      *csv.Reader
	header []string
}

func (h *headerReader) Read() ([]string, error) {
	record, err := h.r.Read()
	if err == nil && h.header == nil {
		h.header = append([]string(nil), record...)
	}
	return record, err
}

func (h *headerReader) ReadAll() ([][]string, error) {
	records, err := h.r.ReadAll()
	if err == nil && len(records) > 0 && h.header == nil {
		h.header = append([]string(nil), records[0]...)
	}
	return records, err
}
