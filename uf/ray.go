package uf

import "time"

// Ray is one decoded UF record: a mandatory header, an optional
// header (if present), a data header, and an ordered list of Fields.
type Ray struct {
	Mandatory MandatoryHeader
	Optional  *OptionalHeader
	Data      DataHeader
	Fields    []Field
}

// DateTime returns the ray's reconstructed valid timestamp.
func (r *Ray) DateTime() time.Time { return r.Mandatory.DateTime() }

// Location returns (latitude, longitude, altitude) for the ray.
func (r *Ray) Location() (lat, lon, alt float64) {
	return r.Mandatory.Latitude(), r.Mandatory.Longitude(), r.Mandatory.Altitude()
}

// Azimuth returns the ray's azimuth in degrees.
func (r *Ray) Azimuth() float64 { return float64(r.Mandatory.Azimuth) / 64.0 }

// Elevation returns the ray's elevation in degrees.
func (r *Ray) Elevation() float64 { return float64(r.Mandatory.Elevation) / 64.0 }

// FixedAngle returns the ray's fixed angle in degrees.
func (r *Ray) FixedAngle() float64 { return float64(r.Mandatory.FixedAngle) / 64.0 }

// SweepRate returns the ray's sweep rate in degrees/second.
func (r *Ray) SweepRate() float64 { return float64(r.Mandatory.SweepRate) / 64.0 }

// Field looks up a decoded field by its data_type tag, e.g. "DZ".
func (r *Ray) Field(dataType string) (*Field, bool) {
	for i := range r.Fields {
		if r.Fields[i].Position.DataTypeString() == dataType {
			return &r.Fields[i], true
		}
	}
	return nil, false
}

// decodeRay decodes a single immutable record byte slice into a Ray.
// All offsets in UF are 1-based and expressed in 16-bit words;
// conversion to a byte index is (offset-1)*2, bounds-checked before
// every dereference.
func decodeRay(buf []byte) (*Ray, error) {
	mh, err := decodeMandatoryHeader(buf)
	if err != nil {
		return nil, err
	}

	ray := &Ray{Mandatory: mh}

	if optionalHeaderPresent(&mh) {
		oh, err := decodeOptionalHeader(buf, mh.OffsetOptionalHeader)
		if err != nil {
			return nil, err
		}
		ray.Optional = &oh
	}

	// local-use header is skipped unconditionally.

	dh, afterDataHeader, err := decodeDataHeader(buf, mh.OffsetDataHeader)
	if err != nil {
		return nil, err
	}
	ray.Data = dh

	positions, err := decodeFieldPositions(buf, afterDataHeader, dh.RecordNFields)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, len(positions))
	for i, pos := range positions {
		fh, after, err := decodeFieldHeader(buf, pos.OffsetFieldHeader)
		if err != nil {
			return nil, err
		}
		dataType := pos.DataTypeString()
		suf, err := decodeFieldSuffix(buf, after, dataType)
		if err != nil {
			return nil, err
		}
		raw, err := decodeFieldSamples(buf, fh.DataOffset, fh.Nbins)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{
			Position: pos,
			Header:   fh,
			Suffix:   suf,
			Raw:      raw,
		}
	}
	ray.Fields = fields

	return ray, nil
}
