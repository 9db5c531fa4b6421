package schedule

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of scheduled actions into a single delayed
// execution. Scheduling while an action is pending discards the pending one
// and arms a fresh timer, so exactly one action fires per burst and it is
// always the last one scheduled.
//
// The zero value is ready to use.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arms fn to run after delay, replacing any pending action. A zero
// delay still fires asynchronously on the timer goroutine, never from
// within Schedule itself.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Cancel discards any pending action. Schedule may be called again
// afterwards.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
