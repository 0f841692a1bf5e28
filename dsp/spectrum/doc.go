// Package spectrum converts complex DFT output into the half-spectrum
// magnitude and phase arrays consumed by peak picking and spectral
// statistics, plus the normalized dB scaling used for spectrogram rows.
package spectrum
