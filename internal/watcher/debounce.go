package watcher

import (
	"sync"
	"time"
)

// Debouncer delays a revalidation trigger until folder activity settles.
// Folder creation tools often make many directories in a burst; coalescing
// the burst into one callback keeps revalidation from running per-mkdir.
type Debouncer struct {
	delay    time.Duration
	callback func()
	mu       sync.Mutex
	pending  *time.Timer
}

// NewDebouncer creates a Debouncer that invokes callback once the delay has
// elapsed with no new triggers.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{delay: delay, callback: callback}
}

// Trigger schedules the callback, resetting the timer if one is pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.pending = nil
		d.mu.Unlock()
		if d.callback != nil {
			d.callback()
		}
	})
}

// Cancel stops a pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// IsPending reports whether a callback is currently scheduled. Primarily
// useful for testing.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
