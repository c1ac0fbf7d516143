package domain

import (
	"strconv"
	"strings"
)

// minSatellites is the fewest tracked satellites accepted for a positional
// sample. Below four the receiver cannot hold a 3D solution.
const minSatellites = 4

// FilterRecords returns the subsequence of records belonging to sondeID that
// pass per-record quality control. Each decision looks only at the record's
// own original field values; the input is never modified. Output order is
// input order restricted to kept records. An empty result is a valid outcome
// and is left to the caller to interpret.
func FilterRecords(records []RawRecord, sondeID string) []RawRecord {
	kept := make([]RawRecord, 0, len(records))
	for _, r := range records {
		if r.SondeID != sondeID {
			continue
		}
		if recordPassesQC(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// recordPassesQC applies the four receiver-state criteria: observing,
// calibrated, some GPS fix, and at least minSatellites tracked. A record
// whose state columns cannot be parsed as integers is rejected outright;
// the receiver always emits them as decimal integers, so a non-integer
// value means a corrupted row.
func recordPassesQC(r RawRecord) bool {
	status, err := strconv.Atoi(strings.TrimSpace(r.Status))
	if err != nil {
		return false
	}
	flags := DecodeStatus(status)
	if !flags.Observing || !flags.Calibrated {
		return false
	}

	fix, err := strconv.Atoi(strings.TrimSpace(r.GPSFix))
	if err != nil || fix == 0 {
		return false
	}

	sats, err := strconv.Atoi(strings.TrimSpace(r.Satellites))
	if err != nil || sats < minSatellites {
		return false
	}

	return true
}
