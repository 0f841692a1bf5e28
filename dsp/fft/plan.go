package fft

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Plan holds precomputed tables for a radix-2 transform of fixed size.
// A Plan is immutable after construction and safe for concurrent use.
type Plan struct {
	n      int
	cos    []float64
	sin    []float64
	bitrev []int
}

// NewPlan builds a plan for transforms of length n. n must be a power of two
// and at least 2.
func NewPlan(n int) (*Plan, error) {
	if n < 2 || !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("fft: size must be a power of two >= 2: %d: %w", n, core.ErrInvalidParameter)
	}

	half := n / 2
	p := &Plan{
		n:      n,
		cos:    make([]float64, half),
		sin:    make([]float64, half),
		bitrev: make([]int, n),
	}

	for k := range half {
		s, c := math.Sincos(-2 * math.Pi * float64(k) / float64(n))
		p.cos[k] = c
		p.sin[k] = s
	}

	bits := core.Log2(n)
	for i := range n {
		r := 0
		for b := range bits {
			if i&(1<<b) != 0 {
				r |= 1 << (bits - 1 - b)
			}
		}

		p.bitrev[i] = r
	}

	return p, nil
}

// Len returns the transform size.
func (p *Plan) Len() int { return p.n }

// Transform computes the forward DFT of (re, im) in place.
func (p *Plan) Transform(re, im []float64) error {
	if len(re) != p.n || len(im) != p.n {
		return fmt.Errorf("fft: buffers must have length %d: re=%d im=%d: %w",
			p.n, len(re), len(im), core.ErrInvalidParameter)
	}

	for i, j := range p.bitrev {
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= p.n; size <<= 1 {
		half := size >> 1
		stride := p.n / size

		for start := 0; start < p.n; start += size {
			for k := range half {
				wr := p.cos[k*stride]
				wi := p.sin[k*stride]

				a := start + k
				b := a + half

				tr := re[b]*wr - im[b]*wi
				ti := re[b]*wi + im[b]*wr

				re[b] = re[a] - tr
				im[b] = im[a] - ti
				re[a] += tr
				im[a] += ti
			}
		}
	}

	return nil
}

var plans sync.Map // map[int]*Plan

// PlanFor returns a cached plan for size n, building it on first use.
func PlanFor(n int) (*Plan, error) {
	if p, ok := plans.Load(n); ok {
		return p.(*Plan), nil
	}

	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}

	actual, _ := plans.LoadOrStore(n, p)

	return actual.(*Plan), nil
}

// Forward returns the DFT of a real frame as separate real and imaginary
// slices of len(frame). The length must be a power of two.
func Forward(frame []float64) (re, im []float64, err error) {
	p, err := PlanFor(len(frame))
	if err != nil {
		return nil, nil, err
	}

	re = make([]float64, len(frame))
	im = make([]float64, len(frame))
	copy(re, frame)

	if err := p.Transform(re, im); err != nil {
		return nil, nil, err
	}

	return re, im, nil
}
