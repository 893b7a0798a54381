package uf

import (
	"bytes"
	"encoding/binary"
	"time"
)

// MandatoryHeader is the fixed 90-byte header (2-byte magic included) present at
// the start of every UF ray record (Appendix C.3).
type MandatoryHeader struct {
	UFString              [2]byte
	RecordLength          int16
	OffsetOptionalHeader  int16
	OffsetLocalUseHeader  int16
	OffsetDataHeader      int16
	RecordNumber          int16
	VolumeNumber          int16
	RayNumber             int16
	RayRecordNumber       int16
	SweepNumber           int16
	RadarName             [8]byte
	SiteName              [8]byte
	LatitudeDegrees       int16
	LatitudeMinutes       int16
	LatitudeSeconds       int16 // seconds * 64
	LongitudeDegrees      int16
	LongitudeMinutes      int16
	LongitudeSeconds      int16 // seconds * 64
	HeightAboveSeaLevel   int16 // meters
	Year                  int16
	Month                 int16
	Day                   int16
	Hour                  int16
	Minute                int16
	Second                int16
	TimeZone              [2]byte
	Azimuth               int16 // degrees * 64
	Elevation             int16 // degrees * 64
	SweepModeRaw          int16
	FixedAngle            int16 // degrees * 64
	SweepRate             int16 // (degrees/second) * 64
	GenerationYear        int16
	GenerationMonth       int16
	GenerationDay         int16
	GenerationFacility    [8]byte
	MissingDataValue      int16
}

// SweepMode returns the decoded sweep-mode enum.
func (h *MandatoryHeader) SweepMode() SweepMode { return SweepMode(h.SweepModeRaw) }

// RadarNameString returns the raw 8-byte radar name. Trailing spaces
// are retained; callers may trim.
func (h *MandatoryHeader) RadarNameString() string { return string(h.RadarName[:]) }

// SiteNameString returns the raw 8-byte site name, spaces retained.
func (h *MandatoryHeader) SiteNameString() string { return string(h.SiteName[:]) }

// Latitude returns the decoded latitude in signed decimal degrees.
// Sign is carried by the degrees component; minutes and seconds are
// magnitudes, so they must be subtracted (not added) when degrees is
// negative.
func (h *MandatoryHeader) Latitude() float64 {
	return dms(h.LatitudeDegrees, h.LatitudeMinutes, h.LatitudeSeconds)
}

// Longitude returns the decoded longitude in signed decimal degrees.
func (h *MandatoryHeader) Longitude() float64 {
	return dms(h.LongitudeDegrees, h.LongitudeMinutes, h.LongitudeSeconds)
}

func dms(deg, min, sec64 int16) float64 {
	secs := float64(sec64) / 64.0
	magnitude := float64(min) + (secs / 60.0)
	magnitude = magnitude / 60.0
	if deg < 0 {
		return float64(deg) - magnitude
	}
	return float64(deg) + magnitude
}

// Altitude returns the height above sea level, in meters.
func (h *MandatoryHeader) Altitude() float64 { return float64(h.HeightAboveSeaLevel) }

// DateTime reconstructs the ray's valid timestamp, windowing 2-digit
// years.
func (h *MandatoryHeader) DateTime() time.Time {
	return recordDateTime(h.Year, h.Month, h.Day, h.Hour, h.Minute, h.Second)
}

func decodeMandatoryHeader(buf []byte) (MandatoryHeader, error) {
	var h MandatoryHeader
	if len(buf) < mandatoryHeaderSize {
		return h, newFormatError("record too short for mandatory header: %d bytes", len(buf))
	}
	r := bytes.NewReader(buf[:mandatoryHeaderSize])
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return h, newFormatError("decoding mandatory header: %v", err)
	}
	if string(h.UFString[:]) != ufMagic {
		return h, newFormatError("missing UF magic in mandatory header, got %q", h.UFString[:])
	}
	return h, nil
}
