// Package csvfile reads raw ground-receiver files and writes QC'd analysis
// files. It is the only package that knows the receiver's positional column
// layout.
package csvfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/sonde-data-etl/internal/domain"
)

// The receiver writes 41 positional columns per sample. Only the columns
// used by the transform are pulled out; the rest are frame counters and
// per-channel diagnostics.
const rawColumnCount = 41

// Column positions in a raw data row.
const (
	colObsTime       = 0  // OBS_Time
	colStatus        = 2  // ST
	colSondeID       = 4  // SondeN
	colWindDirection = 9  // WD
	colWindSpeed     = 10 // WS
	colHeight        = 11 // Height
	colDx            = 12 // Xdistanc
	colDy            = 13 // Ydistanc
	colGPSFix        = 14 // GF
	colLatitude      = 17 // GeodetLat
	colLongitude     = 18 // GeodetLon
	colPressure      = 20 // Press0
	colTemperature   = 21 // Temp0
	colHumidity      = 22 // Humi0
	colSatellites    = 31 // N
)

// headerLines is the count of receiver metadata lines before the first data
// row. They are free-form text, not CSV, and are skipped line-wise.
const headerLines = 6

// ReadRawFile reads one receiver file and returns its samples in file order.
func ReadRawFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	records, err := ParseRaw(f)
	if err != nil {
		return nil, fmt.Errorf("raw file %s: %w", path, err)
	}
	return records, nil
}

// ParseRaw reads receiver samples from r, skipping the metadata header.
// Rows with a column count other than 41 (typically a truncated final row
// from a receiver power-off) are dropped silently; QC handles everything
// else downstream.
func ParseRaw(r io.Reader) ([]domain.RawRecord, error) {
	br := bufio.NewReader(r)
	for i := 0; i < headerLines; i++ {
		if _, err := br.ReadString('\n'); err == io.EOF {
			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("skip header: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) != rawColumnCount {
			continue
		}
		records = append(records, rawRecordFromRow(row))
	}
	return records, nil
}

func rawRecordFromRow(row []string) domain.RawRecord {
	return domain.RawRecord{
		ObsTime:       row[colObsTime],
		Status:        row[colStatus],
		SondeID:       row[colSondeID],
		WindDirection: row[colWindDirection],
		WindSpeed:     row[colWindSpeed],
		Height:        row[colHeight],
		Dx:            row[colDx],
		Dy:            row[colDy],
		GPSFix:        row[colGPSFix],
		Latitude:      row[colLatitude],
		Longitude:     row[colLongitude],
		Pressure:      row[colPressure],
		Temperature:   row[colTemperature],
		Humidity:      row[colHumidity],
		Satellites:    row[colSatellites],
	}
}
