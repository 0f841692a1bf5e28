// Package analysis runs the full spectral analysis of a fully buffered
// signal and assembles a single [Result].
//
// The signal is downmixed to mono. Level statistics and the envelope cover
// the whole signal, the spectrogram covers every hopped frame, and peak,
// harmonic and spectral-shape analysis examine one Blackman-Harris windowed
// frame of FFTSize samples taken from the center of the signal.
//
// Analyze is a pure function of its inputs: repeated calls with the same
// samples and settings return identical results.
package analysis
