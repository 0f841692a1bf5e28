// Package report renders analysis results as a text table, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/internal/config"
)

// MaxTablePeaks limits the peak rows printed by the table format.
const MaxTablePeaks = 12

// Render writes res to w in the given format. Unless full is set the
// per-sample envelope and the spectrogram are omitted from the output.
func Render(w io.Writer, format string, res *analysis.Result, full bool) error {
	if res == nil {
		return fmt.Errorf("report: nil result: %w", core.ErrEmptyInput)
	}

	out := *res
	if !full {
		out.Envelope = nil
		out.Spectrogram = nil
	}

	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(&out)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(&out); err != nil {
			return err
		}

		return enc.Close()
	case config.OutputTable, "":
		return renderTable(w, &out)
	default:
		return fmt.Errorf("report: unknown format %q: %w", format, core.ErrInvalidParameter)
	}
}

func renderTable(w io.Writer, res *analysis.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fundamental := "-"
	if res.FundamentalFreq != nil {
		fundamental = fmt.Sprintf("%.2f Hz", *res.FundamentalFreq)
	}

	fmt.Fprintf(tw, "Sample rate\t%.0f Hz\n", res.SampleRate)
	fmt.Fprintf(tw, "Duration\t%.3f s\n", res.Duration)
	fmt.Fprintf(tw, "RMS level\t%.4f (%.1f dB)\n", res.RMSLevel, res.Extras.Time.RMSdB)
	fmt.Fprintf(tw, "Peak level\t%.4f (%.1f dB)\n", res.PeakLevel, res.Extras.Time.PeakdB)
	fmt.Fprintf(tw, "Fundamental\t%s\n", fundamental)
	fmt.Fprintf(tw, "Centroid\t%.1f Hz\n", res.SpectralCentroid)
	fmt.Fprintf(tw, "Rolloff\t%.1f Hz\n", res.SpectralRolloff)
	fmt.Fprintf(tw, "Flatness\t%.4f\n", res.Extras.Frequency.Flatness)

	if d := res.Extras.Distortion; d != nil {
		fmt.Fprintf(tw, "THD\t%.4f%% (%.1f dB)\n", d.THD*100, d.THDdB)
		fmt.Fprintf(tw, "THD+N\t%.4f%% (%.1f dB)\n", d.THDN*100, d.THDNdB)
	}

	if len(res.Envelope) > 0 {
		fmt.Fprintf(tw, "Envelope\t%d samples\n", len(res.Envelope))
	}

	if len(res.Spectrogram) > 0 {
		fmt.Fprintf(tw, "Spectrogram\t%d frames x %d bins\n", len(res.Spectrogram), len(res.Spectrogram[0]))
	}

	fmt.Fprintf(tw, "\nPeak\tFrequency [Hz]\tMagnitude\tBandwidth [Hz]\n")
	fmt.Fprintf(tw, "----\t--------------\t---------\t--------------\n")

	for i, f := range res.SpectralFeatures {
		if i == MaxTablePeaks {
			fmt.Fprintf(tw, "...\t%d more\t\t\n", len(res.SpectralFeatures)-MaxTablePeaks)
			break
		}

		fmt.Fprintf(tw, "%d\t%.2f\t%.4f\t%.2f\n", i+1, f.Frequency, f.Magnitude, f.Bandwidth)
	}

	if len(res.Harmonics) > 0 {
		fmt.Fprintf(tw, "\nSeries\tFundamental [Hz]\tMembers\tStrength\tInharmonicity\n")
		fmt.Fprintf(tw, "------\t----------------\t-------\t--------\t-------------\n")

		for i, s := range res.Harmonics {
			fmt.Fprintf(tw, "%d\t%.2f\t%d\t%.4f\t%.4f\n",
				i+1, s.Fundamental, len(s.Overtones), s.Strength, s.Inharmonicity)
		}
	}

	return tw.Flush()
}
