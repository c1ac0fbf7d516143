package domain

import "math"

// Magnus approximation constants (Alduchov & Eskridge fit), valid for
// tropospheric temperatures in °C.
const (
	magnusA = 17.625
	magnusB = 243.04 // °C

	// minHumidityPct is the humidity floor below which dewpoint is left
	// undefined; ln(RH) diverges as RH approaches zero.
	minHumidityPct = 1e-4
)

// DeriveDewpoints fills in the Dewpoint field of every record from its
// temperature and relative humidity. No records are dropped: a record whose
// humidity is effectively zero simply keeps a nil Dewpoint.
func DeriveDewpoints(records []SoundingRecord) []SoundingRecord {
	for i := range records {
		if td, ok := Dewpoint(records[i].Temperature, records[i].RelativeHumidity); ok {
			v := td
			records[i].Dewpoint = &v
		} else {
			records[i].Dewpoint = nil
		}
	}
	return records
}

// Dewpoint computes the dewpoint temperature in °C from a temperature in °C
// and relative humidity in percent, using the Magnus approximation.
// Humidity above 100 % (supersaturation or sensor overshoot) is clamped to
// a fraction of 1.0. It reports false when the dewpoint is undefined: at
// effectively zero humidity, or outside the formula's domain (α ≥ a).
func Dewpoint(tempC, rhPct float64) (float64, bool) {
	if rhPct <= minHumidityPct {
		return 0, false
	}

	frac := rhPct / 100.0
	if frac > 1.0 {
		frac = 1.0
	}

	alpha := math.Log(frac) + magnusA*tempC/(magnusB+tempC)
	if alpha >= magnusA {
		return 0, false
	}

	td := magnusB * alpha / (magnusA - alpha)
	if math.IsNaN(td) || math.IsInf(td, 0) {
		return 0, false
	}
	return td, true
}
