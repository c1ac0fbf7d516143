package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sonde-data-etl/internal/domain"
)

// rawRow builds one 41-column receiver row with the transform-relevant
// columns filled in and everything else zeroed.
func rawRow(obsTime, status, sonde string) string {
	cols := make([]string, rawColumnCount)
	for i := range cols {
		cols[i] = "0"
	}
	cols[colObsTime] = obsTime
	cols[colStatus] = status
	cols[colSondeID] = sonde
	cols[colWindDirection] = "245.0"
	cols[colWindSpeed] = "12.3"
	cols[colHeight] = "1520.5"
	cols[colDx] = "-120.0"
	cols[colDy] = "340.0"
	cols[colGPSFix] = "4"
	cols[colLatitude] = "35.6812"
	cols[colLongitude] = "139.7671"
	cols[colPressure] = "850.2"
	cols[colTemperature] = "8.4"
	cols[colHumidity] = "72.0"
	cols[colSatellites] = "9"
	return strings.Join(cols, ",")
}

func rawFileBody(rows ...string) string {
	header := []string{
		"RS-11G GROUND STATION",
		"Receiver S/N: 0042",
		"Firmware: 1.2.3",
		"Session start",
		"Operator: obs",
		"-----",
	}
	return strings.Join(append(header, rows...), "\n") + "\n"
}

func TestParseRaw(t *testing.T) {
	t.Run("skips metadata header and maps columns", func(t *testing.T) {
		body := rawFileBody(
			rawRow("00:10:05", "7", "01234567"),
			rawRow("00:10:15", "7", "01234567"),
		)
		records, err := ParseRaw(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, records, 2)

		r := records[0]
		assert.Equal(t, "00:10:05", r.ObsTime)
		assert.Equal(t, "7", r.Status)
		assert.Equal(t, "01234567", r.SondeID)
		assert.Equal(t, "245.0", r.WindDirection)
		assert.Equal(t, "12.3", r.WindSpeed)
		assert.Equal(t, "1520.5", r.Height)
		assert.Equal(t, "-120.0", r.Dx)
		assert.Equal(t, "340.0", r.Dy)
		assert.Equal(t, "4", r.GPSFix)
		assert.Equal(t, "35.6812", r.Latitude)
		assert.Equal(t, "139.7671", r.Longitude)
		assert.Equal(t, "850.2", r.Pressure)
		assert.Equal(t, "8.4", r.Temperature)
		assert.Equal(t, "72.0", r.Humidity)
		assert.Equal(t, "9", r.Satellites)
	})

	t.Run("drops truncated rows", func(t *testing.T) {
		body := rawFileBody(
			rawRow("00:10:05", "7", "01234567"),
			"00:10:15,0,7", // receiver powered off mid-row
		)
		records, err := ParseRaw(strings.NewReader(body))
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("header-only file yields no records", func(t *testing.T) {
		records, err := ParseRaw(strings.NewReader(rawFileBody()))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("file shorter than the header", func(t *testing.T) {
		records, err := ParseRaw(strings.NewReader("just one line\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestReadRawFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A2_01234567.CSV")
	require.NoError(t, os.WriteFile(path, []byte(rawFileBody(rawRow("00:10:05", "7", "01234567"))), 0o644))

	records, err := ReadRawFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ReadRawFile(filepath.Join(dir, "missing.CSV"))
	assert.Error(t, err)
}

func TestWriteSounding(t *testing.T) {
	dewpoint := 9.2627
	s := domain.Sounding{
		StationID:  "001",
		SondeID:    "01234567",
		LaunchTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Records: []domain.SoundingRecord{
			{
				Time:             time.Date(2024, 1, 1, 0, 10, 5, 0, time.UTC),
				WindDirection:    245,
				WindSpeed:        12.3,
				Height:           1520.5,
				Dx:               -120,
				Dy:               340,
				Latitude:         35.6812,
				Longitude:        139.7671,
				Pressure:         850.2,
				Temperature:      8.4,
				RelativeHumidity: 72,
				Dewpoint:         &dewpoint,
			},
			{
				Time:             time.Date(2024, 1, 1, 0, 10, 35, 0, time.UTC),
				Temperature:      8.2,
				RelativeHumidity: 0,
				Dewpoint:         nil,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "sonde_001.csv")
	require.NoError(t, WriteSounding(path, s))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, outputHeader, rows[0])
	assert.Equal(t, "2024-01-01T00:10:05Z", rows[1][0])
	assert.Equal(t, "245", rows[1][1])
	assert.Equal(t, "9.2627", rows[1][11])
	assert.Equal(t, "", rows[2][11], "missing dewpoint must be an empty cell")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A2_01234567.CSV", "B1_01234567.CSV", "A2_76543210.CSV", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	matches, err := Discover(dir, "01234567")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, filepath.Join(dir, "A2_01234567.CSV"), matches[0])
	assert.Equal(t, filepath.Join(dir, "B1_01234567.CSV"), matches[1])

	none, err := Discover(dir, "00000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("anl", "sonde_001.csv"), OutputPath("anl", "001", 0))
	assert.Equal(t, filepath.Join("anl", "sonde_001_2.csv"), OutputPath("anl", "001", 2))
}
