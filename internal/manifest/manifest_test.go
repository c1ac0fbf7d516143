package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldBook = `StationN,SondeN,Launch_time_JST,Error
001,01234567,2024-01-01_00:00,0
002,76543210,2024-01-01_00:15,1
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(fieldBook))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "001", entries[0].StationID)
	assert.Equal(t, "01234567", entries[0].SondeID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, JST), entries[0].LaunchTime)
	assert.Equal(t, 0, entries[0].ErrorFlag)

	assert.Equal(t, "002", entries[1].StationID)
	assert.Equal(t, 1, entries[1].ErrorFlag)
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong header", "Station,Sonde,Launch,Err\n001,01234567,2024-01-01_00:00,0\n"},
		{"bad launch time", "StationN,SondeN,Launch_time_JST,Error\n001,01234567,2024/01/01 00:00,0\n"},
		{"empty sonde id", "StationN,SondeN,Launch_time_JST,Error\n001,,2024-01-01_00:00,0\n"},
		{"bad error flag", "StationN,SondeN,Launch_time_JST,Error\n001,01234567,2024-01-01_00:00,oops\n"},
		{"short row", "StationN,SondeN,Launch_time_JST,Error\n001,01234567\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field_book.csv")
	require.NoError(t, os.WriteFile(path, []byte(fieldBook), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
