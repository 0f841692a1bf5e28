// Command spectra analyzes the spectral content of WAV files.
//
// Usage:
//
//	spectra analyze [flags] file.wav
//	spectra tone [flags]
//	spectra window [window-name ...]
//
// Examples:
//
//	spectra analyze -o json recording.wav
//	spectra analyze --fft-size 16384 --min-freq 40 bass.wav
//	spectra tone --freq 220 --harmonics 6 --out tone.wav
//	spectra window blackman-harris hann
//
// Every flag can also be set in a YAML file (--config) or through
// SPECTRA_* environment variables, e.g. SPECTRA_ANALYSIS_FFT_SIZE=4096.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
