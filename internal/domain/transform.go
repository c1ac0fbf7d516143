package domain

import (
	"fmt"
	"time"
)

// BuildSounding runs the full QC transform over one raw record stream:
// receiver-state filtering, numeric casting, dewpoint derivation, and
// timestamp reconstruction, in that order. Each stage consumes the complete
// output of the previous one.
//
// It returns ErrNoData when no records match sondeID or every matching
// record is rejected by QC — an expected outcome for a station, carrying no
// partial result. Any other error means the sounding is defective (e.g. a
// malformed sample time) and must not be written out.
func BuildSounding(stationID, sondeID string, launch time.Time, raws []RawRecord) (Sounding, error) {
	filtered := FilterRecords(raws, sondeID)
	if len(filtered) == 0 {
		return Sounding{}, ErrNoData
	}

	records := CastRecords(filtered)
	if len(records) == 0 {
		return Sounding{}, ErrNoData
	}

	records = DeriveDewpoints(records)

	if err := ReconstructTimes(records, launch); err != nil {
		return Sounding{}, fmt.Errorf("reconstruct times for sonde %s: %w", sondeID, err)
	}

	return Sounding{
		StationID:   stationID,
		SondeID:     sondeID,
		LaunchTime:  launch,
		Records:     records,
		ProcessedAt: clock.Now(),
	}, nil
}
