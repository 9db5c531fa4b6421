package schedule

import (
	"sync"
	"time"
)

// Interval repeats a callback on a fixed period. It is bound to one
// callback at construction; Start and Stop control the repetition. Period
// validation is the caller's concern, not enforced here.
type Interval struct {
	fn func()

	mu     sync.Mutex
	period time.Duration
	stop   chan struct{}
}

// NewInterval creates an inactive Interval bound to fn.
func NewInterval(fn func()) *Interval {
	return &Interval{fn: fn}
}

// Start begins periodic execution, replacing any active run. When immediate
// is true the callback runs right away on the new goroutine; otherwise the
// first run happens after one period.
func (iv *Interval) Start(period time.Duration, immediate bool) {
	iv.mu.Lock()
	iv.stopLocked()
	iv.period = period
	stop := make(chan struct{})
	iv.stop = stop
	iv.mu.Unlock()

	go func() {
		if immediate {
			select {
			case <-stop:
				return
			default:
			}
			iv.fn()
		}

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				iv.fn()
			}
		}
	}()
}

// Stop halts further runs. Safe to call when inactive.
func (iv *Interval) Stop() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.stopLocked()
}

func (iv *Interval) stopLocked() {
	if iv.stop != nil {
		close(iv.stop)
		iv.stop = nil
	}
	iv.period = 0
}

// Period returns the active period, 0 when inactive.
func (iv *Interval) Period() time.Duration {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.period
}
