package readiness

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGate_QueuesUntilOpen(t *testing.T) {
	gate := NewGate()

	var order []int
	gate.Ready(func() { order = append(order, 1) })
	gate.Ready(func() { order = append(order, 2) })
	gate.Ready(func() { order = append(order, 3) })

	if len(order) != 0 {
		t.Fatalf("callbacks ran before Open(): %v", order)
	}
	if gate.IsOpen() {
		t.Fatal("IsOpen() = true before Open()")
	}

	gate.Open()

	if !gate.IsOpen() {
		t.Error("IsOpen() = false after Open()")
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("callback order = %v, want [1 2 3]", order)
	}
}

func TestGate_ReadyAfterOpenRunsImmediately(t *testing.T) {
	gate := NewGate()
	gate.Open()

	ran := false
	gate.Ready(func() { ran = true })

	if !ran {
		t.Error("Ready() after Open() did not run callback synchronously")
	}
}

func TestGate_OpenIsIdempotent(t *testing.T) {
	gate := NewGate()

	var calls atomic.Int32
	gate.Ready(func() { calls.Add(1) })

	gate.Open()
	gate.Open()

	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestGate_NestedRegistrationDuringOpen(t *testing.T) {
	gate := NewGate()

	var order []string
	gate.Ready(func() {
		order = append(order, "outer")
		gate.Ready(func() { order = append(order, "nested") })
	})
	gate.Ready(func() { order = append(order, "second") })

	gate.Open()

	want := []string{"outer", "second", "nested"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestGate_ConcurrentRegistration(t *testing.T) {
	gate := NewGate()

	const n = 100
	var calls atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate.Ready(func() { calls.Add(1) })
		}()
	}

	// Open while registrations are still racing in
	go gate.Open()
	wg.Wait()

	if err := gate.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() != n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := calls.Load(); got != n {
		t.Errorf("callbacks run = %d, want %d", got, n)
	}
}

func TestGate_Wait(t *testing.T) {
	t.Run("returns when opened", func(t *testing.T) {
		gate := NewGate()
		go func() {
			time.Sleep(10 * time.Millisecond)
			gate.Open()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := gate.Wait(ctx); err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	})

	t.Run("honours context", func(t *testing.T) {
		gate := NewGate()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := gate.Wait(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
		}
	})
}

func TestGate_NilCallbackIgnored(t *testing.T) {
	gate := NewGate()
	gate.Ready(nil)
	gate.Open()

	select {
	case <-gate.Done():
	default:
		t.Error("Done() not closed after Open()")
	}
}
