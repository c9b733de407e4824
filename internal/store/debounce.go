package store

import (
	"sync"
	"time"
)

// DebounceInterval bounds how often keystroke-driven recomputation runs.
// A rate limit, not a correctness mechanism: the final trailing call
// always sees the latest criteria.
const DebounceInterval = 180 * time.Millisecond

// Debouncer coalesces rapid Trigger calls into a single trailing
// invocation of fn. The derivation it schedules stays directly callable;
// callers that need synchronous results bypass the debouncer entirely.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a debouncer invoking fn after delay of quiet.
// A non-positive delay falls back to DebounceInterval.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DebounceInterval
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)schedules the trailing call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels the pending timer and runs fn immediately.
func (d *Debouncer) Flush() {
	d.Stop()
	d.fn()
}
