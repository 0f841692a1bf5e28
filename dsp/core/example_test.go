package core_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

func ExampleLog2() {
	fmt.Println(core.Log2(8192), core.Log2(1000), core.IsPowerOfTwo(1024))

	// Output:
	// 13 -1 true
}

func Example_errorTaxonomy() {
	err := fmt.Errorf("fft: length must be a power of two: 1000: %w", core.ErrInvalidParameter)
	fmt.Println(errors.Is(err, core.ErrInvalidParameter))

	// Output:
	// true
}
