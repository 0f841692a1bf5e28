package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectra/dsp/window"
)

func (a *app) newWindowCommand() *cobra.Command {
	var (
		size     int
		periodic bool
	)

	cmd := &cobra.Command{
		Use:   "window [window-name ...]",
		Short: "Print spectral properties of analysis windows",
		Long: `Print measured spectral properties of window functions. Without
arguments every supported window is listed. The analysis engine uses
Blackman-Harris.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := resolveWindows(args)
			if err != nil {
				return err
			}

			if size < 2 {
				return fmt.Errorf("size must be >= 2: %d", size)
			}

			var opts []window.Option
			if periodic {
				opts = append(opts, window.WithPeriodic())
			}

			return printWindows(cmd.OutOrStdout(), types, size, opts)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1024, "window length in samples")
	cmd.Flags().BoolVar(&periodic, "periodic", false, "use periodic (FFT) form instead of symmetric")

	return cmd
}

func resolveWindows(names []string) ([]window.Type, error) {
	if len(names) == 0 {
		return window.Types, nil
	}

	types := make([]window.Type, 0, len(names))
	for _, name := range names {
		t, err := window.Parse(name)
		if err != nil {
			return nil, err
		}

		types = append(types, t)
	}

	return types, nil
}

func printWindows(w io.Writer, types []window.Type, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n")

	for _, t := range types {
		info := window.Analyze(window.Generate(t, size, opts...))

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			t, size,
			info.CoherentGain,
			info.ENBW,
			info.Bandwidth3dB,
			info.HighestSidelobedB,
			info.FirstMinimumBins,
			info.ScallopLossdB,
		)
	}

	return tw.Flush()
}
