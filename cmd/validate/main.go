// Command validate performs integrity checks over produced analysis CSVs:
// schema, chronological consistency against the field book, value ranges,
// and dewpoint recomputation parity with the domain package.
//
// Usage:
//
//	go run ./cmd/validate -field-book data/field_book.csv -anl-dir data/anl
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/sonde-data-etl/internal/domain"
	"github.com/couchcryptid/sonde-data-etl/internal/manifest"
)

var expectedHeader = []string{
	"Time", "WD", "WS", "Height", "Dx", "Dy",
	"Lat", "Lon", "Pressure", "Temperature", "RH", "Dewpoint",
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fieldBook := flag.String("field-book", "", "field book CSV path")
	anlDir := flag.String("anl-dir", "", "directory containing analysis CSVs")
	flag.Parse()

	if *fieldBook == "" || *anlDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fieldBook, *anlDir); code != 0 {
		os.Exit(code)
	}
}

func run(fieldBookPath, anlDir string) int {
	fmt.Println("=== Sounding Analysis Integrity Validation ===")
	fmt.Println()

	entries, err := manifest.Load(fieldBookPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	var phases []*phase
	checked := 0
	for _, entry := range entries {
		paths, err := filepath.Glob(filepath.Join(anlDir, "sonde_"+entry.StationID+"*.csv"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: glob: %v\n", err)
			return 1
		}
		for _, path := range paths {
			phases = append(phases, validateFile(path, entry)...)
			checked++
		}
	}

	if checked == 0 {
		fmt.Fprintln(os.Stderr, "FATAL: no analysis files found")
		return 1
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Printf("\nAll checks passed across %d file(s).\n", checked)
	return 0
}

func validateFile(path string, entry manifest.Entry) []*phase {
	base := filepath.Base(path)
	schema := &phase{name: base + ": schema"}
	chrono := &phase{name: base + ": chronology"}
	values := &phase{name: base + ": value ranges"}
	dewpoint := &phase{name: base + ": dewpoint parity"}

	rows, err := readCSV(path)
	if err != nil {
		schema.errorf("read: %v", err)
		return []*phase{schema}
	}

	validateSchema(schema, rows)
	if !schema.passed() {
		return []*phase{schema, chrono, values, dewpoint}
	}

	validateChronology(chrono, rows[1:], entry)
	validateValues(values, rows[1:])
	validateDewpoint(dewpoint, rows[1:])

	return []*phase{schema, chrono, values, dewpoint}
}

func validateSchema(p *phase, rows [][]string) {
	if len(rows) == 0 {
		p.errorf("empty file")
		return
	}
	header := rows[0]
	if len(header) != len(expectedHeader) {
		p.errorf("header has %d columns, want %d", len(header), len(expectedHeader))
		return
	}
	for i, want := range expectedHeader {
		if header[i] != want {
			p.errorf("header column %d is %q, want %q", i, header[i], want)
		}
	}
	if len(rows) == 1 {
		p.errorf("no data rows; empty soundings must not produce a file")
	}
}

// validateChronology checks the date-inheritance rule: the first record
// carries the launch date, and a record's date equals the previous record's
// date even across a time-of-day wrap.
func validateChronology(p *phase, rows [][]string, entry manifest.Entry) {
	var prev time.Time
	for i, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			p.errorf("row %d: bad timestamp %q: %v", i+1, row[0], err)
			return
		}
		if i == 0 {
			ly, lm, ld := entry.LaunchTime.Date()
			y, m, d := ts.Date()
			if y != ly || m != lm || d != ld {
				p.errorf("row 1: date %04d-%02d-%02d does not match launch date", y, m, d)
			}
		} else {
			py, pm, pd := prev.Date()
			y, m, d := ts.Date()
			if y != py || m != pm || d != pd {
				p.errorf("row %d: date advanced from previous record", i+1)
			}
		}
		prev = ts
	}
}

func validateValues(p *phase, rows [][]string) {
	for i, row := range rows {
		rh := mustFloat(p, i, "RH", row[10])
		if rh < 0 || rh > 150 {
			p.errorf("row %d: RH %.1f out of range", i+1, rh)
		}
		lat := mustFloat(p, i, "Lat", row[6])
		if lat < -90 || lat > 90 {
			p.errorf("row %d: latitude %.4f out of range", i+1, lat)
		}
		pressure := mustFloat(p, i, "Pressure", row[8])
		if pressure < 0 || pressure > 1100 {
			p.errorf("row %d: pressure %.1f out of range", i+1, pressure)
		}
	}
}

// validateDewpoint recomputes every dewpoint from temperature and humidity
// and compares against the file, including the missing-value cases.
func validateDewpoint(p *phase, rows [][]string) {
	for i, row := range rows {
		temp := mustFloat(p, i, "Temperature", row[9])
		rh := mustFloat(p, i, "RH", row[10])

		want, ok := domain.Dewpoint(temp, rh)
		if !ok {
			if row[11] != "" {
				p.errorf("row %d: dewpoint %q present but undefined for RH %.4f", i+1, row[11], rh)
			}
			continue
		}
		if row[11] == "" {
			p.errorf("row %d: dewpoint missing but defined for RH %.4f", i+1, rh)
			continue
		}
		got, err := strconv.ParseFloat(row[11], 64)
		if err != nil {
			p.errorf("row %d: bad dewpoint %q: %v", i+1, row[11], err)
			continue
		}
		if math.Abs(got-want) > 1e-3 {
			p.errorf("row %d: dewpoint %.4f, recomputed %.4f", i+1, got, want)
		}
	}
}

func mustFloat(p *phase, row int, col, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.errorf("row %d: bad %s %q: %v", row+1, col, s, err)
		return 0
	}
	return v
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).ReadAll()
}
