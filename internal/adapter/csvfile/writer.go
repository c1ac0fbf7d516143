package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/sonde-data-etl/internal/domain"
)

// outputHeader is the analysis-file column order consumed downstream.
var outputHeader = []string{
	"Time", "WD", "WS", "Height", "Dx", "Dy",
	"Lat", "Lon", "Pressure", "Temperature", "RH", "Dewpoint",
}

// WriteSounding writes a QC'd sounding as an analysis CSV at path. The file
// is created whole or not at all: on any write error the partial file is
// removed, so downstream never sees a truncated series.
func WriteSounding(path string, s domain.Sounding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create analysis file: %w", err)
	}

	if err := writeRecords(f, s.Records); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write analysis file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close analysis file %s: %w", path, err)
	}
	return nil
}

func writeRecords(w io.Writer, records []domain.SoundingRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(outputHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Time.Format(time.RFC3339),
			formatFloat(r.WindDirection),
			formatFloat(r.WindSpeed),
			formatFloat(r.Height),
			formatFloat(r.Dx),
			formatFloat(r.Dy),
			formatFloat(r.Latitude),
			formatFloat(r.Longitude),
			formatFloat(r.Pressure),
			formatFloat(r.Temperature),
			formatFloat(r.RelativeHumidity),
			formatDewpoint(r.Dewpoint),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDewpoint leaves the cell empty for an undefined dewpoint — an empty
// cell, not a zero, marks "missing" in the analysis files.
func formatDewpoint(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
