package uf

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// TimeVector is the volume's per-ray time axis.
type TimeVector struct {
	Units string
	Data  []float64
}

// RangeVector is the volume's gate-range axis, assumed representative
// of the whole volume from the first field of the first ray.
type RangeVector struct {
	Data                      []float64
	MetersToCenterOfFirstGate float64
	MetersBetweenGates        float64
}

// VolumeMetadata carries site/radar identification.
type VolumeMetadata struct {
	OriginalContainer string
	SiteName          string
	RadarName         string
}

// FieldMetadata carries the per-field scalars needed to interpret a
// FieldData matrix.
type FieldMetadata struct {
	ScaleFactor      int16
	MissingDataValue int16
	Nbins            int16
	RangeStartM      int16
	RangeSpacingM    int16
	Polarization     string
}

// FieldData is one field's dense, scaled, masked matrix.
type FieldData struct {
	Data     [][]float64
	Mask     [][]bool
	Metadata FieldMetadata
}

// InstrumentParameters collects the volume-level antenna/pulse
// quantities derived from the decoded rays.
type InstrumentParameters struct {
	PulseWidth             []float64 // seconds, per ray
	RadarBeamWidthH        float64   // degrees
	RadarBeamWidthV        float64   // degrees
	RadarReceiverBandwidth float64   // Hz
	PolarizationMode       []string  // per sweep
	Wavelength             float64   // meters
	Frequency              float64   // Hz
	Prt                    []float64 // seconds, per ray
	NyquistVelocity        []float64 // per ray; nil if any ray lacks a velocity FSI
	ScanRate               []float64 // degrees/second, per sweep
}

// Volume is the decoded product of read_uf: the ordered rays plus
// every aggregated quantity a caller's radar-volume object needs.
// Building the caller's own in-memory radar representation is out of
// scope here; Volume is this decoder's complete, self-contained
// output.
type Volume struct {
	Rays []*Ray

	Time      TimeVector
	Range     RangeVector
	Latitude  float64
	Longitude float64
	Altitude  float64
	Metadata  VolumeMetadata

	ScanType           string
	SweepNumber        []int32
	SweepMode          []string
	FixedAngle         []float64
	SweepStartRayIndex []int32
	SweepEndRayIndex   []int32

	Azimuth   []float64
	Elevation []float64

	Fields map[string]FieldData

	InstrumentParameters InstrumentParameters
}

// NRays returns the number of rays in the volume.
func (v *Volume) NRays() int { return len(v.Rays) }

// NSweeps returns the number of sweeps in the volume.
func (v *Volume) NSweeps() int { return len(v.SweepNumber) }

func assembleVolume(fr *FileReader, opts ReadOptions) (*Volume, error) {
	if len(fr.Rays) == 0 {
		return nil, newFormatError("no rays decoded from input")
	}
	first := fr.Rays[0]
	nrays := len(fr.Rays)
	nsweeps := fr.NSweeps()

	datetimes := make([]time.Time, nrays)
	earliest := first.DateTime()
	for i, ray := range fr.Rays {
		dt := ray.DateTime()
		datetimes[i] = dt
		if dt.Before(earliest) {
			earliest = dt
		}
	}
	timeData := make([]float64, nrays)
	for i, dt := range datetimes {
		timeData[i] = dt.Sub(earliest).Seconds()
	}

	vol := &Volume{
		Rays: fr.Rays,
		Time: TimeVector{
			Units: fmt.Sprintf("seconds since %s", earliest.Format("2006-01-02T15:04:05Z")),
			Data:  timeData,
		},
		Latitude:  first.Mandatory.Latitude(),
		Longitude: first.Mandatory.Longitude(),
		Altitude:  first.Mandatory.Altitude(),
		Metadata: VolumeMetadata{
			OriginalContainer: "UF",
			SiteName:          first.Mandatory.SiteNameString(),
			RadarName:         first.Mandatory.RadarNameString(),
		},
		Azimuth:   make([]float64, nrays),
		Elevation: make([]float64, nrays),
	}

	if len(first.Fields) > 0 {
		rangeHeader := first.Fields[0].Header
		rangeData := make([]float64, rangeHeader.Nbins)
		start := float64(rangeHeader.RangeStartM)
		step := float64(rangeHeader.RangeSpacingM)
		for i := range rangeData {
			rangeData[i] = float64(i)*step + start
		}
		vol.Range = RangeVector{
			Data:                      rangeData,
			MetersToCenterOfFirstGate: start,
			MetersBetweenGates:        step,
		}
	}

	for i, ray := range fr.Rays {
		vol.Azimuth[i] = ray.Azimuth()
		vol.Elevation[i] = ray.Elevation()
	}

	scanModeName := first.Mandatory.SweepMode().String()
	vol.ScanType = scanModeName

	vol.SweepNumber = make([]int32, nsweeps)
	vol.SweepMode = make([]string, nsweeps)
	vol.FixedAngle = make([]float64, nsweeps)
	vol.SweepStartRayIndex = make([]int32, nsweeps)
	vol.SweepEndRayIndex = make([]int32, nsweeps)
	scanRate := make([]float64, nsweeps)
	polarizationMode := make([]string, nsweeps)
	for i := 0; i < nsweeps; i++ {
		firstRay := fr.Rays[fr.firstRayInSweep[i]]
		vol.SweepNumber[i] = int32(i)
		vol.SweepMode[i] = ScanTypeLabel(scanModeName)
		vol.FixedAngle[i] = firstRay.FixedAngle()
		vol.SweepStartRayIndex[i] = int32(fr.firstRayInSweep[i])
		vol.SweepEndRayIndex[i] = int32(fr.lastRayInSweep[i])
		scanRate[i] = firstRay.SweepRate()
		if len(firstRay.Fields) > 0 {
			polarizationMode[i] = firstRay.Fields[0].Header.Polarization().String()
		} else {
			polarizationMode[i] = PolarizationElliptical.String()
		}
	}

	vol.Fields = assembleFields(fr.Rays, opts)
	vol.InstrumentParameters = assembleInstrumentParameters(fr.Rays, scanRate, polarizationMode)

	return vol, nil
}

// assembleFields builds one dense masked matrix per field present on
// ray 0, applying field renaming/exclusion from opts.
func assembleFields(rays []*Ray, opts ReadOptions) map[string]FieldData {
	first := rays[0]
	fields := make(map[string]FieldData, len(first.Fields))

	for fi, firstField := range first.Fields {
		name := opts.resolveFieldName(firstField.Position.DataTypeString())
		if opts.excluded(name) {
			continue
		}

		ngates := len(firstField.Raw)
		missing := first.Mandatory.MissingDataValue
		scale := firstField.Header.ScaleFactor

		data := make([][]float64, len(rays))
		mask := make([][]bool, len(rays))

		for ri, ray := range rays {
			raw := make([]int16, ngates)
			for g := range raw {
				raw[g] = missing
			}
			if fi < len(ray.Fields) {
				src := ray.Fields[fi].Raw
				n := ngates
				if len(src) < n {
					n = len(src)
				}
				copy(raw[:n], src[:n])
			} else {
				logrus.Warnf("ray %d has only %d fields, expected field index %d (%s); row filled with missing_data_value",
					ri, len(ray.Fields), fi, firstField.Position.DataTypeString())
			}

			row := make([]float64, ngates)
			maskRow := make([]bool, ngates)
			for g, r := range raw {
				maskRow[g] = r == missing
				if scale == 0 {
					row[g] = float64(r)
				} else {
					row[g] = float64(r) / float64(scale)
				}
			}
			data[ri] = row
			mask[ri] = maskRow
		}

		fields[name] = FieldData{
			Data: data,
			Mask: mask,
			Metadata: FieldMetadata{
				ScaleFactor:      scale,
				MissingDataValue: missing,
				Nbins:            firstField.Header.Nbins,
				RangeStartM:      firstField.Header.RangeStartM,
				RangeSpacingM:    firstField.Header.RangeSpacingM,
				Polarization:     firstField.Header.Polarization().String(),
			},
		}
	}
	return fields
}

// assembleInstrumentParameters derives the volume-level antenna/pulse
// quantities from ray 0's first field, plus per-ray pulse_width, prt
// and nyquist_velocity.
func assembleInstrumentParameters(rays []*Ray, scanRate []float64, polarizationMode []string) InstrumentParameters {
	ip := InstrumentParameters{
		PolarizationMode: polarizationMode,
		ScanRate:         scanRate,
		PulseWidth:       make([]float64, len(rays)),
		Prt:              make([]float64, len(rays)),
	}

	first := rays[0]
	if len(first.Fields) > 0 {
		f0 := first.Fields[0].Header
		ip.RadarBeamWidthH = float64(f0.BeamWidthH) / 64.0
		ip.RadarBeamWidthV = float64(f0.BeamWidthV) / 64.0
		ip.RadarReceiverBandwidth = float64(f0.Bandwidth) / 16.0 * 1e6
		wavelengthM := float64(f0.WavelengthCm) / 64.0 / 100.0
		ip.Wavelength = wavelengthM
		if wavelengthM != 0 {
			ip.Frequency = speedOfLight / wavelengthM
		}
	}

	nyquist := make([]float64, len(rays))
	nyquistComplete := true
	for i, ray := range rays {
		if len(ray.Fields) > 0 {
			ip.PulseWidth[i] = float64(ray.Fields[0].Header.PulseWidthM) / speedOfLight
			ip.Prt[i] = float64(ray.Fields[0].Header.PrtMs) / 1e6
		}

		field, ok := velocityField(ray)
		if !ok || field.Suffix.Velocity == nil {
			nyquistComplete = false
			continue
		}
		scale := field.Header.ScaleFactor
		if scale == 0 {
			nyquistComplete = false
			continue
		}
		nyquist[i] = float64(field.Suffix.Velocity.Nyquist) / float64(scale)
	}
	if nyquistComplete {
		ip.NyquistVelocity = nyquist
	}

	return ip
}

// velocityField returns the first velocity-family field on a ray, if
// any.
func velocityField(ray *Ray) (*Field, bool) {
	for i := range ray.Fields {
		if velocityFields[ray.Fields[i].Position.DataTypeString()] {
			return &ray.Fields[i], true
		}
	}
	return nil, false
}
