package uf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeSingleRayFieldMatrix(t *testing.T) {
	mh := baseMandatoryHeader()
	mh.MissingDataValue = -32768
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, RangeStartM: 0, RangeSpacingM: 250, Samples: []int16{100, 200, -32768, 400}},
	})

	vol, err := ReadUF(bytes.NewReader(record), ReadOptions{})
	require.NoError(t, err)

	fd, ok := vol.Fields["DZ"]
	require.True(t, ok)
	require.Len(t, fd.Data, 1)
	assert.InDeltaSlice(t, []float64{10.0, 20.0, -3276.8, 40.0}, fd.Data[0], 1e-9)
	assert.Equal(t, []bool{false, false, true, false}, fd.Mask[0])
}

func TestVolumeScanTypeIsPlainSweepModeName(t *testing.T) {
	mh := baseMandatoryHeader()
	mh.SweepModeRaw = int16(SweepPPI)
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
	})

	vol, err := ReadUF(bytes.NewReader(record), ReadOptions{})
	require.NoError(t, err)

	// ScanType is the plain sweep-mode name; only the per-sweep
	// SweepMode array gets the further "azimuth_surveillance"-style
	// mapping.
	assert.Equal(t, "ppi", vol.ScanType)
	require.Len(t, vol.SweepMode, 1)
	assert.Equal(t, "azimuth_surveillance", vol.SweepMode[0])
}

func TestVolumeUnknownPolarization(t *testing.T) {
	mh := baseMandatoryHeader()
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Polarization: 99, Samples: []int16{1, 2}},
	})
	vol, err := ReadUF(bytes.NewReader(record), ReadOptions{})
	require.NoError(t, err)
	require.Len(t, vol.InstrumentParameters.PolarizationMode, 1)
	assert.Equal(t, "elliptical", vol.InstrumentParameters.PolarizationMode[0])
}

func TestVolumeMissingNyquist(t *testing.T) {
	mh1 := baseMandatoryHeader()
	mh1.SweepNumber = 0
	nyquist := int16(320)
	rayWithNyquist := buildRecord(t, mh1, []testFieldSpec{
		{Tag: "VR", ScaleFactor: 10, Samples: []int16{1, 2}, Nyquist: &nyquist},
	})

	mh2 := baseMandatoryHeader()
	mh2.SweepNumber = 0
	rayWithoutVelocity := buildRecord(t, mh2, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
	})

	var buf bytes.Buffer
	buf.Write(rayWithNyquist)
	buf.Write(rayWithoutVelocity)

	vol, err := ReadUF(&buf, ReadOptions{})
	require.NoError(t, err)
	assert.Nil(t, vol.InstrumentParameters.NyquistVelocity)
}

func TestVolumeNyquistPresent(t *testing.T) {
	mh := baseMandatoryHeader()
	nyquist := int16(320)
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "VR", ScaleFactor: 10, Samples: []int16{1, 2}, Nyquist: &nyquist},
	})
	vol, err := ReadUF(bytes.NewReader(record), ReadOptions{})
	require.NoError(t, err)
	require.NotNil(t, vol.InstrumentParameters.NyquistVelocity)
	assert.InDelta(t, 32.0, vol.InstrumentParameters.NyquistVelocity[0], 1e-9)
}

func TestVolumeFieldRenamingAndExclusion(t *testing.T) {
	mh := baseMandatoryHeader()
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
		{Tag: "VR", ScaleFactor: 10, Samples: []int16{3, 4}},
	})

	opts := ReadOptions{
		FieldNames:    map[string]string{"DZ": "reflectivity"},
		ExcludeFields: map[string]struct{}{"VR": {}},
	}
	vol, err := ReadUF(bytes.NewReader(record), opts)
	require.NoError(t, err)

	_, hasReflectivity := vol.Fields["reflectivity"]
	assert.True(t, hasReflectivity)
	_, hasVR := vol.Fields["VR"]
	assert.False(t, hasVR)
	_, hasDZ := vol.Fields["DZ"]
	assert.False(t, hasDZ)
}

func TestVolumeFileFieldNamesIgnoresRenaming(t *testing.T) {
	mh := baseMandatoryHeader()
	record := buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
	})
	opts := ReadOptions{
		FieldNames:     map[string]string{"DZ": "reflectivity"},
		FileFieldNames: true,
	}
	vol, err := ReadUF(bytes.NewReader(record), opts)
	require.NoError(t, err)
	_, ok := vol.Fields["DZ"]
	assert.True(t, ok)
}

func TestVolumeSweepGeometry(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		mh := baseMandatoryHeader()
		mh.SweepNumber = 0
		mh.Azimuth = int16(i) * 64
		buf.Write(buildRecord(t, mh, []testFieldSpec{
			{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
		}))
	}
	mh := baseMandatoryHeader()
	mh.SweepNumber = 1
	mh.Azimuth = 64 * 10
	buf.Write(buildRecord(t, mh, []testFieldSpec{
		{Tag: "DZ", ScaleFactor: 10, Samples: []int16{1, 2}},
	}))

	vol, err := ReadUF(&buf, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, vol.NRays())
	assert.Equal(t, 2, vol.NSweeps())
	assert.Equal(t, []int32{0, 3}, vol.SweepStartRayIndex)
	assert.Equal(t, []int32{2, 3}, vol.SweepEndRayIndex)

	wantNRays := vol.NRays()
	sum := 0
	for i := 0; i < vol.NSweeps(); i++ {
		sum += int(vol.SweepEndRayIndex[i]-vol.SweepStartRayIndex[i]) + 1
	}
	assert.Equal(t, wantNRays, sum)
}

func TestVolumeInvalidOption(t *testing.T) {
	_, err := ParseOptions(map[string]any{"bogus_option": true})
	require.Error(t, err)
	var ufErr *Error
	require.ErrorAs(t, err, &ufErr)
	assert.Equal(t, InvalidOption, ufErr.Kind)
}
