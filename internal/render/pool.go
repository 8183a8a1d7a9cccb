package render

// Pool bounds the number of concurrent renders so CPU-heavy bitmap work can
// never starve the goroutines serving conversational turns. A render is
// synchronous and non-cancellable once a slot is acquired.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a pool with the given number of slots, at least one.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Do runs fn in the calling goroutine once a slot is free.
func (p *Pool) Do(fn func() (string, error)) (string, error) {
	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	return fn()
}
