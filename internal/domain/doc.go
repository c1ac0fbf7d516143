// Package domain models quality control of radiosonde sounding telemetry.
//
// # Data Source
//
// Raw data comes from the ground receiver, one CSV file per received sonde.
// Each file carries six lines of receiver metadata followed by data rows of
// 41 positional columns: sample time, frame counters, receiver diagnostics,
// wind, position, PTU (pressure/temperature/humidity) values, and GPS state.
// The adapter layer reads these files; this package only sees RawRecord
// values in original acquisition order.
//
// # Receiver Conventions
//
// Status bitmask (ST column), least-significant bit first:
//
//	bit 0: observing (1) vs. pre-launch (0)
//	bit 1: remote receiver mode (1) vs. local (0) — informational only
//	bit 2: baseline check complete (1) vs. not yet calibrated (0)
//
// GPS-fix code (GF column):
//
//	4: differential 3D fix
//	3: differential 2D fix
//	2: standalone 3D fix
//	1: standalone 2D fix
//	0: no fix
//
// Sample time (OBS_Time column):
//
//	"HH:MM:SS" with no date portion. The absolute date is reconstructed from
//	the launch date: the first surviving record takes the launch date, and
//	every later record inherits the date resolved for the record before it.
//	The date is never advanced when the time-of-day decreases; soundings
//	crossing local midnight keep the previous date. That matches historical
//	output and is deliberate — see ReconstructTimes.
//
// # Quality Control
//
// A record survives QC only if the sonde id matches the field book entry,
// the status bitmask shows observing and calibrated, a GPS fix was obtained,
// and at least four satellites were tracked. Surviving records then have
// their ten numeric telemetry fields parsed; a record with any unparseable
// field is dropped whole. QC decisions are deterministic and per-record.
//
// # Dewpoint
//
// Dewpoint is derived, not measured. It uses the Magnus approximation with
// constants a = 17.625, b = 243.04 (°C), valid over the tropospheric range:
//
//	α  = ln(RH) + a·T/(b+T)      RH as a fraction in (0, 1]
//	Td = b·α / (a−α)
//
// Humidity at or below 0.0001 % leaves the dewpoint undefined rather than
// producing a placeholder value. Raw humidity above 100 % is clamped to a
// fraction of 1.0 before the formula is applied.
package domain
