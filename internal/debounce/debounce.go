// Package debounce provides a cancellable timer that collapses bursts of
// events into a single call.
package debounce

import (
	"sync"
	"time"
)

// DefaultSearchDelay is the quiet period after the last keystroke before a
// search is issued.
const DefaultSearchDelay = 300 * time.Millisecond

// Debouncer runs a function once the configured duration has elapsed with no
// newer call to Debounce.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce schedules fn, replacing any call that has not fired yet.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		// A timer that already fired cannot be stopped, so a replaced
		// callback may still get here and must bail out.
		d.mu.Lock()
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Immediate cancels the pending call and runs fn now.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

// Pending reports whether a call is scheduled and has not fired.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
