package input

import "sync/atomic"

// runUntilStopped calls slice until stop is set. Each slice must return
// within a bounded time, so a stop that lands before the first slice
// starts is still observed.
func runUntilStopped(stop *atomic.Bool, slice func()) {
	for !stop.Load() {
		slice()
	}
}
