// Package wavio reads and writes PCM WAV files as per-channel float64 slices
// normalized to [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// ErrInvalidFile reports a stream that is not a readable PCM WAV file.
var ErrInvalidFile = errors.New("wavio: not a valid wav file")

// pcmFormat is the WAVE_FORMAT_PCM format tag.
const pcmFormat = 1

// Audio is decoded sample data, one slice per channel.
type Audio struct {
	Channels   [][]float64
	SampleRate float64
	BitDepth   int
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(a.Frames()) / a.SampleRate
}

// Decode reads a PCM WAV stream. 8-bit data is unsigned and re-centred;
// wider depths are scaled by 2^(bits-1).
func Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: read pcm: %w", err)
	}

	chans := buf.Format.NumChannels
	if chans <= 0 {
		return nil, fmt.Errorf("wavio: %d channels: %w", chans, ErrInvalidFile)
	}

	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(dec.BitDepth)
	}

	scale, offset := 1/math.Exp2(float64(depth-1)), 0.0
	if depth == 8 {
		scale, offset = 1.0/128, 128
	}

	frames := len(buf.Data) / chans
	out := make([][]float64, chans)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < chans; c++ {
			out[c][i] = (float64(buf.Data[i*chans+c]) - offset) * scale
		}
	}

	return &Audio{
		Channels:   out,
		SampleRate: float64(buf.Format.SampleRate),
		BitDepth:   depth,
	}, nil
}

// Encode writes channels as 16-bit PCM. Samples are clipped to [-1, 1].
// All channels must have the same length.
func Encode(w io.WriteSeeker, channels [][]float64, sampleRate int) error {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return fmt.Errorf("wavio: encode: %w", core.ErrEmptyInput)
	}

	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate %d: %w", sampleRate, core.ErrInvalidParameter)
	}

	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return fmt.Errorf("wavio: channel %d has %d samples, want %d: %w",
				c, len(ch), frames, core.ErrInvalidParameter)
		}
	}

	const bitDepth = 16
	const fullScale = 1<<(bitDepth-1) - 1

	chans := len(channels)
	data := make([]int, frames*chans)
	for i := 0; i < frames; i++ {
		for c := 0; c < chans; c++ {
			data[i*chans+c] = int(math.Round(core.Clamp(channels[c][i], -1, 1) * fullScale))
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, chans, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close: %w", err)
	}

	return nil
}
