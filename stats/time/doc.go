// Package time computes whole-signal level statistics and the short-time
// amplitude envelope of a time-domain signal.
package time
