package core

import "errors"

// Error taxonomy shared by every package in the module. Operations wrap one
// of these with context, so callers match with errors.Is.
var (
	// ErrInvalidParameter reports a length, size or setting outside its
	// valid domain (non power-of-two FFT, window shorter than 2 samples,
	// frame larger than the signal, ...).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInput reports a zero-length sample buffer or channel set.
	ErrEmptyInput = errors.New("empty input")
)
