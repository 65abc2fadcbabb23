package bridge

import (
	"context"
	"sync"
)

// Promise is a result that settles exactly once with a value or an error.
//
// Settlement is visible through Done, Await and Then. Callbacks attached
// with Then run on the settling goroutine, or immediately if the promise
// has already settled.
type Promise[T any] struct {
	done chan struct{}
	once sync.Once

	mu        sync.Mutex
	value     T
	err       error
	callbacks []func(T, error)
}

// NewPromise returns an unsettled promise and the function that settles it.
// Only the first call to settle has any effect.
func NewPromise[T any]() (*Promise[T], func(T, error)) {
	p := &Promise[T]{done: make(chan struct{})}
	return p, p.settle
}

// Resolved returns a promise already settled with v.
func Resolved[T any](v T) *Promise[T] {
	p, settle := NewPromise[T]()
	settle(v, nil)
	return p
}

// Rejected returns a promise already settled with err.
func Rejected[T any](err error) *Promise[T] {
	p, settle := NewPromise[T]()
	var zero T
	settle(zero, err)
	return p
}

func (p *Promise[T]) settle(v T, err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.value = v
		p.err = err
		callbacks := p.callbacks
		p.callbacks = nil
		close(p.done)
		p.mu.Unlock()

		for _, cb := range callbacks {
			cb(v, err)
		}
	})
}

// Done returns a channel closed once the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise settles or ctx is done.
// A ctx error does not settle the promise; the pending work keeps running.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers cb to receive the settled value and error.
func (p *Promise[T]) Then(cb func(T, error)) {
	if cb == nil {
		return
	}

	p.mu.Lock()
	select {
	case <-p.done:
		v, err := p.value, p.err
		p.mu.Unlock()
		cb(v, err)
		return
	default:
	}
	p.callbacks = append(p.callbacks, cb)
	p.mu.Unlock()
}

// Map returns a promise settling with fn applied to p's outcome.
func Map[T, U any](p *Promise[T], fn func(T, error) (U, error)) *Promise[U] {
	out, settle := NewPromise[U]()
	p.Then(func(v T, err error) {
		settle(fn(v, err))
	})
	return out
}
