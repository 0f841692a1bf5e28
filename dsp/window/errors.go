package window

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

var (
	errEmptyCoeffs      = fmt.Errorf("window: coefficients must not be empty: %w", core.ErrEmptyInput)
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = fmt.Errorf("samples and coefficients must have same length: %w", core.ErrInvalidParameter)
)

func validateLength(size int) error {
	if size < 2 {
		return fmt.Errorf("window: length must be >= 2: %d: %w", size, core.ErrInvalidParameter)
	}

	return nil
}
