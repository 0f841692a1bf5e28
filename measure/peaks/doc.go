// Package peaks locates spectral peaks in a half-spectrum magnitude array.
//
// A bin is a peak when it exceeds a threshold relative to the spectrum
// maximum and is strictly greater than its two neighbours on each side.
// Peak frequencies are refined to sub-bin accuracy with a three-point
// quadratic fit and filtered to a configured frequency band.
package peaks
