package ufstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-uf/uf"
)

func testVolume() *uf.Volume {
	return &uf.Volume{
		Azimuth:            []float64{0, 1, 2, 3, 358, 359},
		SweepNumber:        []int32{0},
		FixedAngle:         []float64{0.5},
		SweepStartRayIndex: []int32{0},
		SweepEndRayIndex:   []int32{5},
		Fields: map[string]uf.FieldData{
			"DZ": {
				Data: [][]float64{{10, 20, 30}, {15, 25, 35}},
				Mask: [][]bool{{false, false, true}, {false, false, false}},
			},
		},
	}
}

func TestSweeps(t *testing.T) {
	vol := testVolume()
	summaries := Sweeps(vol)
	require.Len(t, summaries, 1)
	assert.Equal(t, 6, summaries[0].NRays)
	assert.Equal(t, 0.5, summaries[0].FixedAngle)
	assert.Greater(t, summaries[0].MeanAzSpacing, 0.0)
}

func TestFields(t *testing.T) {
	vol := testVolume()
	summaries := Fields(vol)
	require.Len(t, summaries, 1)
	assert.Equal(t, "DZ", summaries[0].Name)
	assert.Equal(t, 10.0, summaries[0].Min)
	assert.Equal(t, 35.0, summaries[0].Max)
}
