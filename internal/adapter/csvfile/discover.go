package csvfile

import (
	"fmt"
	"path/filepath"
)

// Discover locates raw receiver files for a sonde under rawDir. Receiver
// files are named with the sonde serial as suffix, e.g. "A2_01234567.CSV".
// Zero matches is a valid result (station skipped); multiple matches occur
// when a receiver session was restarted mid-flight, and each file is
// processed independently. Results come back in lexical order.
func Discover(rawDir, sondeID string) ([]string, error) {
	pattern := filepath.Join(rawDir, "*"+sondeID+".CSV")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	return matches, nil
}

// OutputPath returns the analysis file path for a station. When a station
// has several raw files, index (1-based) disambiguates them; pass 0 for the
// single-file case.
func OutputPath(outDir, stationID string, index int) string {
	if index > 0 {
		return filepath.Join(outDir, fmt.Sprintf("sonde_%s_%d.csv", stationID, index))
	}
	return filepath.Join(outDir, fmt.Sprintf("sonde_%s.csv", stationID))
}
