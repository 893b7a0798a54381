package uf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// testFieldSpec describes one field to embed in a synthetic record
// built by buildRecord.
type testFieldSpec struct {
	Tag           string
	ScaleFactor   int16
	RangeStartKm  int16
	RangeStartM   int16
	RangeSpacingM int16
	PulseWidthM   int16
	BeamWidthH    int16
	BeamWidthV    int16
	Bandwidth     int16
	Polarization  int16
	WavelengthCm  int16
	SampleSize    int16
	PrtMs         int16
	Samples       []int16
	Nyquist       *int16 // set to embed an FSI_VEL suffix
	Power         bool   // set to embed an empty-valued FSI_DM suffix
}

func pad8(s string) [8]byte {
	var b [8]byte
	copy(b[:], s+"        ")
	return b
}

func pad2(s string) [2]byte {
	var b [2]byte
	copy(b[:], s+"  ")
	return b
}

func mustWrite(t *testing.T, buf *bytes.Buffer, v any) {
	t.Helper()
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		t.Fatalf("binary.Write: %v", err)
	}
}

// buildRecord assembles one complete, unpadded UF record byte slice
// from a mandatory-header template and a set of fields, computing all
// the 1-based word offsets itself.
func buildRecord(t *testing.T, mh MandatoryHeader, fields []testFieldSpec) []byte {
	t.Helper()

	const wordsPerMandatory = mandatoryHeaderSize / 2 // 45

	dataHeaderWord := int16(wordsPerMandatory + 1)
	mh.OffsetDataHeader = dataHeaderWord

	fieldPositionTableWords := int16(len(fields)) * (fieldPositionSize / 2)
	firstFieldHeaderWord := dataHeaderWord + int16(dataHeaderSize/2) + fieldPositionTableWords

	type laidOutField struct {
		spec       testFieldSpec
		headerWord int16
		dataWord   int16
	}

	laidOut := make([]laidOutField, len(fields))
	cursorWord := firstFieldHeaderWord
	for i, f := range fields {
		headerWord := cursorWord
		suffixWords := int16(0)
		if f.Nyquist != nil {
			suffixWords = fsiVelSize / 2
		} else if f.Power {
			suffixWords = fsiDMSize / 2
		}
		dataWord := headerWord + int16(fieldHeaderSize/2) + suffixWords
		laidOut[i] = laidOutField{spec: f, headerWord: headerWord, dataWord: dataWord}
		cursorWord = dataWord + int16(len(f.Samples))
	}

	buf := &bytes.Buffer{}
	mustWrite(t, buf, &mh)

	dh := DataHeader{RayNFields: int16(len(fields)), RayNRecords: 1, RecordNFields: int16(len(fields))}
	mustWrite(t, buf, &dh)

	for _, f := range laidOut {
		var posStruct FieldPosition
		copy(posStruct.DataType[:], f.spec.Tag)
		posStruct.OffsetFieldHeader = f.headerWord
		mustWrite(t, buf, &posStruct)
	}

	for _, f := range laidOut {
		fh := FieldHeader{
			DataOffset:      f.dataWord,
			ScaleFactor:     f.spec.ScaleFactor,
			RangeStartKm:    f.spec.RangeStartKm,
			RangeStartM:     f.spec.RangeStartM,
			RangeSpacingM:   f.spec.RangeSpacingM,
			Nbins:           int16(len(f.spec.Samples)),
			PulseWidthM:     f.spec.PulseWidthM,
			BeamWidthH:      f.spec.BeamWidthH,
			BeamWidthV:      f.spec.BeamWidthV,
			Bandwidth:       f.spec.Bandwidth,
			PolarizationRaw: f.spec.Polarization,
			WavelengthCm:    f.spec.WavelengthCm,
			SampleSize:      f.spec.SampleSize,
			ThresholdData:   pad2(""),
			ThresholdValue:  0,
			ThresholdScale:  0,
			EditCode:        pad2(""),
			PrtMs:           f.spec.PrtMs,
			BitsPerBin:      16,
		}
		mustWrite(t, buf, &fh)

		if f.spec.Nyquist != nil {
			v := FSIVelocity{Nyquist: *f.spec.Nyquist, Spare: 0}
			mustWrite(t, buf, &v)
		} else if f.spec.Power {
			p := FSIPower{}
			mustWrite(t, buf, &p)
		}
	}

	for _, f := range laidOut {
		mustWrite(t, buf, f.spec.Samples)
	}

	out := buf.Bytes()
	recordWords := int16(len(out) / 2)

	// patch record_length now that the full size is known
	patched := make([]byte, len(out))
	copy(patched, out)
	binary.BigEndian.PutUint16(patched[2:4], uint16(recordWords))
	return patched
}

// withPadding wraps a record with n bytes of matched prefix/suffix
// padding, as UF streams do.
func withPadding(record []byte, n int) []byte {
	out := make([]byte, 0, n+len(record)+n)
	out = append(out, make([]byte, n)...)
	out = append(out, record...)
	out = append(out, make([]byte, n)...)
	return out
}

// baseMandatoryHeader returns a MandatoryHeader template with the UF
// magic set and reasonable defaults for the fields tests don't care
// about.
func baseMandatoryHeader() MandatoryHeader {
	mh := MandatoryHeader{}
	copy(mh.UFString[:], ufMagic)
	mh.RadarName = pad8("KXXX")
	mh.SiteName = pad8("TEST")
	mh.TimeZone = pad2("GM")
	mh.GenerationFacility = pad8("TEST")
	mh.Year = 2011
	mh.Month = 6
	mh.Day = 15
	mh.Hour = 12
	mh.Minute = 30
	mh.Second = 0
	mh.SweepModeRaw = int16(SweepPPI)
	mh.MissingDataValue = -32768
	mh.VolumeNumber = 1
	mh.RayNumber = 1
	mh.RayRecordNumber = 1
	mh.SweepNumber = 0
	return mh
}
