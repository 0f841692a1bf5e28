// Package frequency computes spectral shape descriptors from a half-spectrum
// magnitude array of N/2 bins, where bin i sits at i*sampleRate/N Hz.
package frequency
