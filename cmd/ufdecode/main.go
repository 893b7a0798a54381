package main

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"
	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-uf/internal/ufstat"
	"github.com/jddeal/go-uf/uf"
)

var cli struct {
	Args struct {
		Filename string
	} `positional-args:"yes" required:"yes"`
	LogLevel            string `short:"l" long:"log-level" description:"logging level" choice:"error" choice:"info" choice:"debug" choice:"trace" default:"info"`
	ShowMandatoryHeader bool   `long:"show-mandatory-header" description:"dumps out the contents of the first ray's mandatory header"`
	Summary             bool   `long:"summary" description:"prints per-sweep and per-field summary statistics"`
	JSON                bool   `long:"json" description:"emits the decoded volume's metadata as JSON"`
}

func main() {
	_, err := flags.Parse(&cli)
	if err != nil {
		os.Exit(1)
	}

	levels := map[string]logrus.Level{
		"error": logrus.ErrorLevel,
		"info":  logrus.InfoLevel,
		"debug": logrus.DebugLevel,
		"trace": logrus.TraceLevel,
	}
	logrus.SetLevel(levels[cli.LogLevel])

	logrus.Info(color.CyanString("decoding %s", cli.Args.Filename))
	vol, err := uf.ReadUFFile(cli.Args.Filename, uf.ReadOptions{})
	if err != nil {
		logrus.Error(color.RedString(err.Error()))
		os.Exit(1)
	}

	logrus.Infof("%s rays=%d sweeps=%d scan_type=%s site=%q radar=%q",
		color.GreenString("decoded"),
		vol.NRays(), vol.NSweeps(), vol.ScanType,
		vol.Metadata.SiteName, vol.Metadata.RadarName,
	)

	if cli.ShowMandatoryHeader {
		mh := vol.Rays[0].Mandatory
		logrus.Infof("mandatory header: volume=%d sweep=%d ray=%d az=%.2f el=%.2f fixed_angle=%.2f",
			mh.VolumeNumber, mh.SweepNumber, mh.RayNumber,
			vol.Rays[0].Azimuth(), vol.Rays[0].Elevation(), vol.Rays[0].FixedAngle(),
		)
	}

	if cli.Summary {
		for _, s := range ufstat.Sweeps(vol) {
			logrus.Infof("sweep %d: rays=%d fixed_angle=%.2f mean_az_spacing=%.3f stddev_az_spacing=%.3f",
				s.SweepIndex, s.NRays, s.FixedAngle, s.MeanAzSpacing, s.StdDevAzSpacing,
			)
		}
		for _, f := range ufstat.Fields(vol) {
			logrus.Infof("field %s: min=%.2f max=%.2f mean=%.2f stddev=%.2f",
				color.YellowString(f.Name), f.Min, f.Max, f.Mean, f.StdDev,
			)
		}
	}

	if cli.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaryView(vol)); err != nil {
			logrus.Error(color.RedString(err.Error()))
			os.Exit(1)
		}
	}
}

// summaryView is the JSON-serializable subset of a Volume: metadata
// and geometry, excluding the bulk field arrays.
func summaryView(vol *uf.Volume) map[string]any {
	return map[string]any{
		"site_name":             vol.Metadata.SiteName,
		"radar_name":            vol.Metadata.RadarName,
		"scan_type":             vol.ScanType,
		"latitude":              vol.Latitude,
		"longitude":             vol.Longitude,
		"altitude":              vol.Altitude,
		"nrays":                 vol.NRays(),
		"nsweeps":               vol.NSweeps(),
		"sweep_number":          vol.SweepNumber,
		"sweep_mode":            vol.SweepMode,
		"fixed_angle":           vol.FixedAngle,
		"sweep_start_ray_index": vol.SweepStartRayIndex,
		"sweep_end_ray_index":   vol.SweepEndRayIndex,
		"time_units":            vol.Time.Units,
		"instrument_parameters": map[string]any{
			"radar_beam_width_h":       vol.InstrumentParameters.RadarBeamWidthH,
			"radar_beam_width_v":       vol.InstrumentParameters.RadarBeamWidthV,
			"radar_receiver_bandwidth": vol.InstrumentParameters.RadarReceiverBandwidth,
			"wavelength":               vol.InstrumentParameters.Wavelength,
			"frequency":                vol.InstrumentParameters.Frequency,
			"polarization_mode":        vol.InstrumentParameters.PolarizationMode,
		},
	}
}
