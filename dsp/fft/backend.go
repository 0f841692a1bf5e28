package fft

import (
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Transformer computes an in-place forward DFT of fixed length.
type Transformer interface {
	Len() int
	Transform(re, im []float64) error
}

// Backend selects a Transformer implementation.
type Backend int

const (
	// BackendRadix2 is the built-in iterative radix-2 transform.
	BackendRadix2 Backend = iota
	// BackendAlgoFFT delegates to the algo-fft library.
	BackendAlgoFFT
)

func (b Backend) String() string {
	switch b {
	case BackendRadix2:
		return "radix2"
	case BackendAlgoFFT:
		return "algofft"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend resolves a backend name as printed by [Backend.String].
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "radix2":
		return BackendRadix2, nil
	case "algofft", "algo-fft":
		return BackendAlgoFFT, nil
	default:
		return 0, fmt.Errorf("fft: unknown backend %q: %w", name, core.ErrInvalidParameter)
	}
}

// New returns a Transformer of length n for the backend.
//
// Radix-2 transformers share cached plans and are safe for concurrent use.
// AlgoFFT transformers own a scratch buffer and must not be shared between
// goroutines.
func New(backend Backend, n int) (Transformer, error) {
	switch backend {
	case BackendRadix2:
		p, err := PlanFor(n)
		if err != nil {
			return nil, err
		}

		return p, nil
	case BackendAlgoFFT:
		a, err := newAlgoTransformer(n)
		if err != nil {
			return nil, err
		}

		return a, nil
	default:
		return nil, fmt.Errorf("fft: unknown backend %d: %w", int(backend), core.ErrInvalidParameter)
	}
}

type algoTransformer struct {
	plan    *algofft.Plan[complex128]
	scratch []complex128
}

func newAlgoTransformer(n int) (*algoTransformer, error) {
	if n < 2 || !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("fft: size must be a power of two >= 2: %d: %w", n, core.ErrInvalidParameter)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create algo-fft plan: %w", err)
	}

	return &algoTransformer{plan: plan, scratch: make([]complex128, n)}, nil
}

func (a *algoTransformer) Len() int { return len(a.scratch) }

func (a *algoTransformer) Transform(re, im []float64) error {
	n := len(a.scratch)
	if len(re) != n || len(im) != n {
		return fmt.Errorf("fft: buffers must have length %d: re=%d im=%d: %w",
			n, len(re), len(im), core.ErrInvalidParameter)
	}

	for i := range a.scratch {
		a.scratch[i] = complex(re[i], im[i])
	}

	if err := a.plan.Forward(a.scratch, a.scratch); err != nil {
		return fmt.Errorf("fft: algo-fft forward: %w", err)
	}

	for i, c := range a.scratch {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return nil
}
