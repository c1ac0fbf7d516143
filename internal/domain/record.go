package domain

import (
	"errors"
	"time"
)

// ErrNoData marks a sounding that produced zero usable records: no raw file
// rows matched the sonde id, or every record was rejected by quality control.
// It is an expected terminal state for a station, not a processing fault.
var ErrNoData = errors.New("sounding has no usable records")

// RawRecord is one receiver sample exactly as read from the raw CSV file.
// All values are kept as strings; nothing is interpreted until the QC stages
// run, so filtering always sees the original field values. Columns not used
// by the transform (frame counters, receiver diagnostics, per-channel GPS
// state) are dropped by the reader.
type RawRecord struct {
	ObsTime       string // truncated sample time, "HH:MM:SS"
	Status        string // observation status bitmask (ST)
	SondeID       string // sonde serial printed on the instrument (SondeN)
	WindDirection string // degrees (WD)
	WindSpeed     string // m/s (WS)
	Height        string // geopotential height, m
	Dx            string // horizontal displacement east, m (Xdistanc)
	Dy            string // horizontal displacement north, m (Ydistanc)
	GPSFix        string // GPS-fix code (GF)
	Latitude      string // geodetic latitude, degrees (GeodetLat)
	Longitude     string // geodetic longitude, degrees (GeodetLon)
	Pressure      string // hPa (Press0)
	Temperature   string // °C (Temp0)
	Humidity      string // relative humidity, % (Humi0)
	Satellites    string // tracked satellite count (N)
}

// StatusFlags is the decoded observation status bitmask.
type StatusFlags struct {
	Observing  bool // bit 0: observation running vs. pre-launch
	Remote     bool // bit 1: remote receiver mode; not a QC criterion
	Calibrated bool // bit 2: baseline check complete
}

// DecodeStatus interprets the integer status bitmask.
func DecodeStatus(status int) StatusFlags {
	return StatusFlags{
		Observing:  status&0b1 != 0,
		Remote:     status&0b10 != 0,
		Calibrated: status&0b100 != 0,
	}
}

// SoundingRecord is a quality-controlled sample. All telemetry fields are
// well-defined numbers; only Dewpoint may be absent (nil), which happens at
// effectively zero humidity. Time starts as the zero value and is filled in
// by ReconstructTimes from TimeOfDay and the launch date.
type SoundingRecord struct {
	Time             time.Time `json:"time"`
	TimeOfDay        string    `json:"-"` // receiver "HH:MM:SS" before reconstruction
	WindDirection    float64   `json:"wind_direction"`
	WindSpeed        float64   `json:"wind_speed"`
	Height           float64   `json:"height"`
	Dx               float64   `json:"dx"`
	Dy               float64   `json:"dy"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Pressure         float64   `json:"pressure"`
	Temperature      float64   `json:"temperature"`
	RelativeHumidity float64   `json:"relative_humidity"`
	Dewpoint         *float64  `json:"dewpoint,omitempty"`
}

// Sounding is the full QC'd time series for one balloon launch, in original
// acquisition order. Order is load-bearing: time reconstruction threads the
// resolved date from each record into the next, so Records must never be
// re-sorted.
type Sounding struct {
	StationID   string           `json:"station_id"`
	SondeID     string           `json:"sonde_id"`
	LaunchTime  time.Time        `json:"launch_time"`
	Records     []SoundingRecord `json:"records"`
	ProcessedAt time.Time        `json:"processed_at"`
}
