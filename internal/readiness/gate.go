package readiness

import (
	"context"
	"fmt"
	"sync"
)

// Gate is a one-shot readiness signal.
//
// Thread Safety: All methods are safe for concurrent use.
type Gate struct {
	mu      sync.Mutex
	opening bool
	open    bool
	pending []func()
	done    chan struct{}
}

// NewGate returns a closed gate.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Ready runs fn exactly once, after the gate opens.
// If the gate is already open fn runs synchronously before Ready returns.
func (g *Gate) Ready(fn func()) {
	if fn == nil {
		return
	}

	g.mu.Lock()
	if !g.open {
		g.pending = append(g.pending, fn)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	fn()
}

// Open opens the gate and runs queued callbacks in registration order.
// Calling Open more than once, or concurrently, has no further effect.
//
// Callbacks registered by a queued callback while Open is draining run
// after the callbacks that were already queued.
func (g *Gate) Open() {
	g.mu.Lock()
	if g.opening {
		g.mu.Unlock()
		return
	}
	g.opening = true

	for len(g.pending) > 0 {
		batch := g.pending
		g.pending = nil
		g.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		g.mu.Lock()
	}

	g.open = true
	close(g.done)
	g.mu.Unlock()
}

// IsOpen reports whether Open has completed.
func (g *Gate) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.open
}

// Done returns a channel closed once the gate is open.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for readiness: %w", ctx.Err())
	}
}
