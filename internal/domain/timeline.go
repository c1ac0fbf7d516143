package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReconstructTimes resolves each record's bare "HH:MM:SS" sample time into
// an absolute timestamp, in place. The first record is combined with the
// launch date; every later record is combined with the date resolved for
// the record before it, threading an explicit previous-date accumulator
// through the sequence. Records must be in original acquisition order.
//
// The date is never advanced when a record's time-of-day is numerically
// smaller than the previous record's, so a sounding crossing local midnight
// keeps the pre-midnight date. Historical analysis files were produced this
// way and downstream comparisons depend on it staying put.
//
// A sample time that does not parse as "HH:MM:SS" fails the whole sounding:
// the time column is not covered by the numeric-field QC, so a malformed
// value here is an input defect and emitting a guessed timestamp would
// corrupt the series.
func ReconstructTimes(records []SoundingRecord, launch time.Time) error {
	prev := launch
	for i := range records {
		tod, err := time.Parse("15:04:05", strings.TrimSpace(records[i].TimeOfDay))
		if err != nil {
			return fmt.Errorf("record %d: malformed sample time %q: %w", i, records[i].TimeOfDay, err)
		}
		records[i].Time = time.Date(
			prev.Year(), prev.Month(), prev.Day(),
			tod.Hour(), tod.Minute(), tod.Second(), 0,
			launch.Location(),
		)
		prev = records[i].Time
	}
	return nil
}
