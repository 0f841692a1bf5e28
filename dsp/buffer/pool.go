package buffer

import "sync"

// Pool provides sync.Pool-based Frame reuse across transform workers.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Frame{}
			},
		},
	}
}

// Get returns a zeroed Frame of the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Frame {
	f := p.pool.Get().(*Frame)
	f.Resize(length)
	f.Zero()

	return f
}

// Put returns a Frame to the pool. The caller must not use it afterwards.
func (p *Pool) Put(f *Frame) {
	if f == nil {
		return
	}

	p.pool.Put(f)
}
