// Package readiness provides the one-time "platform ready" signal that
// every localstore operation waits on.
//
// Callbacks registered before the gate opens are queued and run, in
// registration order, when Open is called. Callbacks registered after
// that run immediately on the caller's goroutine.
//
// Usage:
//
//	gate := readiness.NewGate()
//	gate.Ready(func() { log.Info("platform ready") })
//	...
//	gate.Open() // runs queued callbacks exactly once
package readiness
