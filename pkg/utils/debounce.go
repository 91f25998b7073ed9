package utils

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the settle window applied to search input before it
// reaches the screening pipeline.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer coalesces bursts of calls into a single invocation of the last
// function passed, fired after no new call has arrived for the configured
// delay. Each call cancels and reschedules the pending one.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given delay. A non-positive delay
// falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the settle window, replacing any pending call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
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
