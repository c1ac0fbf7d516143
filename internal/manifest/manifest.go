// Package manifest loads the observation field book: the per-station list
// of sonde serials and launch times that seeds each sounding's transform.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// launchTimeLayout matches the field book's minute-granularity launch time,
// e.g. "2024-01-01_00:00".
const launchTimeLayout = "2006-01-02_15:04"

// JST is the launch-time zone used throughout the field book.
var JST = time.FixedZone("JST", 9*60*60)

// Entry is one field book row: the station and the sonde flown from it.
type Entry struct {
	StationID  string
	SondeID    string
	LaunchTime time.Time
	ErrorFlag  int // operator-recorded launch problem code; 0 = clean launch
}

// Load reads the field book CSV at path. Expected header:
//
//	StationN,SondeN,Launch_time_JST,Error
//
// Entry order is preserved — the batch processes stations in field book
// order when run serially.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open field book: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("field book %s: %w", path, err)
	}
	return entries, nil
}

// Parse reads field book rows from r. Exposed separately so tests and
// fixture generators can work against in-memory data.
func Parse(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.TrimSpace(header[0]) != "StationN" {
		return nil, fmt.Errorf("unexpected header %v, want StationN,SondeN,Launch_time_JST,Error", header)
	}

	var entries []Entry
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		entry, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRow(row []string) (Entry, error) {
	station := strings.TrimSpace(row[0])
	sonde := strings.TrimSpace(row[1])
	if station == "" || sonde == "" {
		return Entry{}, fmt.Errorf("empty station or sonde id")
	}

	launch, err := time.ParseInLocation(launchTimeLayout, strings.TrimSpace(row[2]), JST)
	if err != nil {
		return Entry{}, fmt.Errorf("launch time: %w", err)
	}

	errorFlag := 0
	if s := strings.TrimSpace(row[3]); s != "" {
		errorFlag, err = strconv.Atoi(s)
		if err != nil {
			return Entry{}, fmt.Errorf("error flag: %w", err)
		}
	}

	return Entry{
		StationID:  station,
		SondeID:    sonde,
		LaunchTime: launch,
		ErrorFlag:  errorFlag,
	}, nil
}
