package uf

import (
	"bytes"
	"encoding/binary"
)

// DataHeader precedes the per-field position table.
type DataHeader struct {
	RayNFields    int16
	RayNRecords   int16
	RecordNFields int16
}

// FieldPosition locates one field's FieldHeader within the record.
type FieldPosition struct {
	DataType          [2]byte
	OffsetFieldHeader int16
}

// DataTypeString returns the 2-byte ASCII field tag, e.g. "DZ", "VR".
func (p FieldPosition) DataTypeString() string { return string(p.DataType[:]) }

// FieldHeader describes one field's range geometry, antenna
// parameters and thresholding (38 bytes).
type FieldHeader struct {
	DataOffset      int16
	ScaleFactor     int16
	RangeStartKm    int16
	RangeStartM     int16
	RangeSpacingM   int16
	Nbins           int16
	PulseWidthM     int16
	BeamWidthH      int16 // degrees * 64
	BeamWidthV      int16 // degrees * 64
	Bandwidth       int16 // MHz * 16
	PolarizationRaw int16
	WavelengthCm    int16 // cm * 64
	SampleSize      int16
	ThresholdData   [2]byte
	ThresholdValue  int16
	ThresholdScale  int16
	EditCode        [2]byte
	PrtMs           int16 // actually microseconds, despite the name
	BitsPerBin      int16
}

// Polarization returns the decoded polarization enum.
func (h *FieldHeader) Polarization() Polarization { return Polarization(h.PolarizationRaw) }

// FSIVelocity is the field-specific suffix following velocity-family
// FieldHeaders ("VF", "VE", "VR", "VT", "VP", "VL").
type FSIVelocity struct {
	Nyquist int16
	Spare   int16
}

// FSIPower is the field-specific suffix following a "DM" FieldHeader.
type FSIPower struct {
	RadarConstant int16
	NoisePower    int16
	ReceiverGain  int16
	PeakPower     int16
	AntennaGain   int16
	PulseDuration int16
}

// FieldSuffix is a tagged variant over the possible field-specific
// suffixes following a FieldHeader. Exactly one of Velocity/Power is
// non-nil, or neither, for fields with no known suffix.
type FieldSuffix struct {
	Velocity *FSIVelocity
	Power    *FSIPower
}

// Field is one immutable (position, header, suffix, raw samples)
// tuple, built in a single pass rather than mutated in place.
type Field struct {
	Position FieldPosition
	Header   FieldHeader
	Suffix   FieldSuffix
	Raw      []int16
}

func decodeDataHeader(buf []byte, wordOffset int16) (DataHeader, int, error) {
	var dh DataHeader
	byteOffset, err := wordToByteOffset(wordOffset, len(buf), dataHeaderSize)
	if err != nil {
		return dh, 0, err
	}
	r := bytes.NewReader(buf[byteOffset : byteOffset+dataHeaderSize])
	if err := binary.Read(r, binary.BigEndian, &dh); err != nil {
		return dh, 0, newFormatError("decoding data header: %v", err)
	}
	return dh, byteOffset + dataHeaderSize, nil
}

func decodeFieldPositions(buf []byte, tableStart int, n int16) ([]FieldPosition, error) {
	if n < 0 {
		return nil, newFormatError("record_nfields must be >= 0, got %d", n)
	}
	positions := make([]FieldPosition, n)
	for i := range positions {
		start := tableStart + int(i)*fieldPositionSize
		if start < 0 || start+fieldPositionSize > len(buf) {
			return nil, newFormatError("field position table entry %d exceeds record length", i)
		}
		r := bytes.NewReader(buf[start : start+fieldPositionSize])
		if err := binary.Read(r, binary.BigEndian, &positions[i]); err != nil {
			return nil, newFormatError("decoding field position %d: %v", i, err)
		}
	}
	return positions, nil
}

func decodeFieldHeader(buf []byte, wordOffset int16) (FieldHeader, int, error) {
	var fh FieldHeader
	byteOffset, err := wordToByteOffset(wordOffset, len(buf), fieldHeaderSize)
	if err != nil {
		return fh, 0, err
	}
	r := bytes.NewReader(buf[byteOffset : byteOffset+fieldHeaderSize])
	if err := binary.Read(r, binary.BigEndian, &fh); err != nil {
		return fh, 0, newFormatError("decoding field header: %v", err)
	}
	if fh.BitsPerBin != 16 {
		return fh, 0, newFormatError("unsupported bits_per_bin %d, only 16-bit samples are supported", fh.BitsPerBin)
	}
	return fh, byteOffset + fieldHeaderSize, nil
}

func decodeFieldSuffix(buf []byte, afterFieldHeader int, dataType string) (FieldSuffix, error) {
	var suf FieldSuffix
	switch {
	case velocityFields[dataType]:
		if afterFieldHeader+fsiVelSize > len(buf) {
			return suf, newFormatError("FSI_VEL for field %q exceeds record length", dataType)
		}
		var v FSIVelocity
		r := bytes.NewReader(buf[afterFieldHeader : afterFieldHeader+fsiVelSize])
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return suf, newFormatError("decoding FSI_VEL for field %q: %v", dataType, err)
		}
		suf.Velocity = &v
	case dataType == fsiDMTag:
		if afterFieldHeader+fsiDMSize > len(buf) {
			return suf, newFormatError("FSI_DM for field %q exceeds record length", dataType)
		}
		var p FSIPower
		r := bytes.NewReader(buf[afterFieldHeader : afterFieldHeader+fsiDMSize])
		if err := binary.Read(r, binary.BigEndian, &p); err != nil {
			return suf, newFormatError("decoding FSI_DM for field %q: %v", dataType, err)
		}
		suf.Power = &p
	}
	return suf, nil
}

func decodeFieldSamples(buf []byte, dataOffset, nbins int16) ([]int16, error) {
	if nbins < 1 {
		return nil, newFormatError("nbins must be >= 1, got %d", nbins)
	}
	byteOffset, err := wordToByteOffset(dataOffset, len(buf), int(nbins)*2)
	if err != nil {
		return nil, err
	}
	samples := make([]int16, nbins)
	r := bytes.NewReader(buf[byteOffset : byteOffset+int(nbins)*2])
	if err := binary.Read(r, binary.BigEndian, &samples); err != nil {
		return nil, newFormatError("decoding field samples: %v", err)
	}
	return samples, nil
}
