package domain

import (
	"strconv"
	"strings"
)

// CastRecords converts filtered raw records into typed sounding records.
// Each of the ten telemetry fields is parsed as a float; a record with any
// unparseable field is dropped whole, leaving the rest of the sequence
// untouched. The sample time is carried through as-is; it is validated
// later by ReconstructTimes, not here.
func CastRecords(records []RawRecord) []SoundingRecord {
	cast := make([]SoundingRecord, 0, len(records))
	for _, r := range records {
		rec, ok := castRecord(r)
		if !ok {
			continue
		}
		cast = append(cast, rec)
	}
	return cast
}

func castRecord(r RawRecord) (SoundingRecord, bool) {
	rec := SoundingRecord{TimeOfDay: r.ObsTime}

	fields := []struct {
		raw string
		dst *float64
	}{
		{r.WindDirection, &rec.WindDirection},
		{r.WindSpeed, &rec.WindSpeed},
		{r.Height, &rec.Height},
		{r.Dx, &rec.Dx},
		{r.Dy, &rec.Dy},
		{r.Latitude, &rec.Latitude},
		{r.Longitude, &rec.Longitude},
		{r.Pressure, &rec.Pressure},
		{r.Temperature, &rec.Temperature},
		{r.Humidity, &rec.RelativeHumidity},
	}
	for _, f := range fields {
		v, ok := parseNumeric(f.raw)
		if !ok {
			return SoundingRecord{}, false
		}
		*f.dst = v
	}
	return rec, true
}

// parseNumeric parses a telemetry field as a float64. Empty strings and
// receiver error markers (anything non-numeric) report false.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
