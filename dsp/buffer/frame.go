package buffer

// Frame is a split-complex scratch buffer of fixed length.
type Frame struct {
	Re []float64
	Im []float64
}

// NewFrame returns a zeroed frame of length n.
func NewFrame(n int) *Frame {
	n = max(n, 0)

	return &Frame{Re: make([]float64, n), Im: make([]float64, n)}
}

// Len returns the frame length.
func (f *Frame) Len() int {
	return len(f.Re)
}

// Resize sets the length to n, reusing capacity when possible. Contents are
// not preserved.
func (f *Frame) Resize(n int) {
	n = max(n, 0)
	if n <= cap(f.Re) && n <= cap(f.Im) {
		f.Re = f.Re[:n]
		f.Im = f.Im[:n]

		return
	}

	f.Re = make([]float64, n)
	f.Im = make([]float64, n)
}

// Zero clears both halves.
func (f *Frame) Zero() {
	clear(f.Re)
	clear(f.Im)
}

// Load copies src into Re, zero-padding when src is shorter than the frame,
// and clears Im. It returns the number of samples copied.
func (f *Frame) Load(src []float64) int {
	n := copy(f.Re, src)
	clear(f.Re[n:])
	clear(f.Im)

	return n
}
