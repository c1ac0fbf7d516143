package csvfile

import (
	"github.com/couchcryptid/sonde-data-etl/internal/domain"
)

// Store binds the raw and analysis directories into the interfaces the
// pipeline consumes.
type Store struct {
	RawDir string
	OutDir string
}

// Discover implements pipeline.RawStore.
func (s Store) Discover(sondeID string) ([]string, error) {
	return Discover(s.RawDir, sondeID)
}

// ReadRaw implements pipeline.RawStore.
func (s Store) ReadRaw(path string) ([]domain.RawRecord, error) {
	return ReadRawFile(path)
}

// WriteSounding implements pipeline.ResultWriter and returns the path of
// the file it wrote.
func (s Store) WriteSounding(stationID string, index int, snd domain.Sounding) (string, error) {
	path := OutputPath(s.OutDir, stationID, index)
	if err := WriteSounding(path, snd); err != nil {
		return "", err
	}
	return path, nil
}
