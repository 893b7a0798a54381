// Package uf decodes Universal Format (UF) radar files, a legacy
// big-endian binary container (1980 AMS report) used to exchange
// Doppler weather radar volume scans.
//
// The documents used and referenced in this package:
//   - Appendix C, "Universal Format for Digital Radar Data" (1980 AMS
//     report), as carried forward by the NASA TRMM/GPM ground validation
//     tooling and the Py-ART `uf` reader.
package uf

import "time"

// SweepMode is the mandatory header's scan-strategy enum.
type SweepMode int16

const (
	SweepCalibration SweepMode = 0
	SweepPPI         SweepMode = 1
	SweepCoplane     SweepMode = 2
	SweepRHI         SweepMode = 3
	SweepVPT         SweepMode = 4
	SweepTarget      SweepMode = 5
	SweepManual      SweepMode = 6
	SweepIdle        SweepMode = 7
)

var sweepModeNames = map[SweepMode]string{
	SweepCalibration: "calibration",
	SweepPPI:         "ppi",
	SweepCoplane:     "coplane",
	SweepRHI:         "rhi",
	SweepVPT:         "vpt",
	SweepTarget:      "target",
	SweepManual:      "manual",
	SweepIdle:        "idle",
}

// String returns the UF sweep-mode name, or "unknown" for values
// outside the defined enum (there is no liberal fallback here, unlike
// Polarization, because an unrecognized sweep mode signals a corrupt
// or unsupported file rather than a benign variant).
func (m SweepMode) String() string {
	if s, ok := sweepModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// scanTypeLabel maps a sweep mode name to the per-sweep sweep_mode
// label a caller expects (the volume-level scan type stays the plain
// name).
var scanTypeLabel = map[string]string{
	"ppi":    "azimuth_surveillance",
	"vpt":    "vertical_pointing",
	"target": "pointing",
}

// ScanTypeLabel returns the caller-facing label for a UF sweep mode
// name, passing unmapped names through unchanged.
func ScanTypeLabel(mode string) string {
	if label, ok := scanTypeLabel[mode]; ok {
		return label
	}
	return mode
}

// Polarization is the FieldHeader's transmit/receive polarization enum.
type Polarization int16

const (
	PolarizationHorizontal Polarization = 1
	PolarizationVertical   Polarization = 2
	PolarizationCircular   Polarization = 3
	PolarizationElliptical Polarization = 4
)

// String returns the polarization name. Unknown codes liberally map to
// "elliptical" rather than failing.
func (p Polarization) String() string {
	switch p {
	case PolarizationHorizontal:
		return "horizontal"
	case PolarizationVertical:
		return "vertical"
	case PolarizationCircular:
		return "circular"
	default:
		return "elliptical"
	}
}

// velocityFields is the set of data_type tags whose FieldHeader is
// followed by an FSI_VEL suffix.
var velocityFields = map[string]bool{
	"VF": true,
	"VE": true,
	"VR": true,
	"VT": true,
	"VP": true,
	"VL": true,
}

const fsiDMTag = "DM"

// speedOfLight is used to convert pulse_width_m to seconds.
const speedOfLight = 2.99792458e8

// ufMagic is the literal that must appear at the record's padding
// offset.
const ufMagic = "UF"

// sizes of each fixed-layout section, in bytes.
const (
	mandatoryHeaderSize = 90 // includes the 2-byte "UF" magic
	optionalHeaderSize  = 28
	dataHeaderSize      = 6
	fieldPositionSize   = 4
	fieldHeaderSize     = 38
	fsiVelSize          = 4
	fsiDMSize           = 12
)

// recordDateTime reconstructs a ray's valid datetime from the
// mandatory header's year/month/day/hour/minute/second fields,
// windowing 2-digit years. The time_zone field is a 2-byte
// site-defined code (e.g. "GM", "LO"), not an IANA name; callers treat
// the result as UTC.
func recordDateTime(year, month, day, hour, minute, second int16) time.Time {
	y := int(year)
	if y < 1900 {
		y += 2000
	}
	return time.Date(y, time.Month(month), int(day), int(hour), int(minute), int(second), 0, time.UTC)
}
