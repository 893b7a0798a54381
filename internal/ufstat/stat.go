// Package ufstat computes diagnostic-only summary statistics over a
// decoded volume, for the CLI's --summary mode. Nothing here is
// load-bearing for decode correctness.
package ufstat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jddeal/go-uf/uf"
)

// SweepSummary reports per-sweep ray counts and azimuth spacing
// statistics.
type SweepSummary struct {
	SweepIndex      int
	NRays           int
	FixedAngle      float64
	MeanAzSpacing   float64
	StdDevAzSpacing float64
}

// FieldSummary reports per-field gate-value statistics across the
// whole volume, ignoring masked (missing) gates.
type FieldSummary struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Sweeps computes one SweepSummary per sweep in vol.
func Sweeps(vol *uf.Volume) []SweepSummary {
	summaries := make([]SweepSummary, vol.NSweeps())
	for i := range summaries {
		start := int(vol.SweepStartRayIndex[i])
		end := int(vol.SweepEndRayIndex[i])
		azimuths := vol.Azimuth[start : end+1]

		spacings := make([]float64, 0, len(azimuths))
		for j := 1; j < len(azimuths); j++ {
			d := math.Abs(azimuths[j] - azimuths[j-1])
			if d > 180 {
				d = 360 - d
			}
			spacings = append(spacings, d)
		}

		mean, stddev := 0.0, 0.0
		if len(spacings) > 0 {
			mean, stddev = stat.MeanStdDev(spacings, nil)
		}

		summaries[i] = SweepSummary{
			SweepIndex:      i,
			NRays:           end - start + 1,
			FixedAngle:      vol.FixedAngle[i],
			MeanAzSpacing:   mean,
			StdDevAzSpacing: stddev,
		}
	}
	return summaries
}

// Fields computes one FieldSummary per field in vol, over unmasked
// gates only.
func Fields(vol *uf.Volume) []FieldSummary {
	names := make([]string, 0, len(vol.Fields))
	for name := range vol.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]FieldSummary, 0, len(names))
	for _, name := range names {
		fd := vol.Fields[name]
		var values []float64
		for ri, row := range fd.Data {
			for gi, v := range row {
				if !fd.Mask[ri][gi] {
					values = append(values, v)
				}
			}
		}
		var s FieldSummary
		s.Name = name
		if len(values) > 0 {
			sort.Float64s(values)
			s.Min = values[0]
			s.Max = values[len(values)-1]
			s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
