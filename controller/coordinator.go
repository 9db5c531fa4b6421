package controller

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/refetch/core"
)

// invocation pairs a handle with its abort plumbing and identity tag.
type invocation[V any] struct {
	id     string
	handle core.Handle[V]
	tag    string
	cancel context.CancelFunc

	abortOnce sync.Once
	aborted   atomic.Bool
}

// abort requests cooperative cancellation: the per-invocation context is
// canceled and, when the handle supports it, Abort is forwarded. Idempotent.
func (inv *invocation[V]) abort() {
	inv.abortOnce.Do(func() {
		inv.aborted.Store(true)
		if a, ok := inv.handle.(core.Abortable); ok {
			a.Abort()
		}
		inv.cancel()
	})
}

// coordinator decides, for two temporally overlapping invocations, whether
// the earlier one must be aborted and whose resolution may mutate state. It
// holds a single slot: the most recently arrived invocation.
type coordinator[V any] struct {
	mu      sync.Mutex
	current *invocation[V]
}

// arrive registers inv as current. The previous occupant is aborted unless
// both carry an equal non-empty tag, in which case both stay outstanding
// and both remain authoritative.
func (co *coordinator[V]) arrive(inv *invocation[V]) {
	co.mu.Lock()
	prev := co.current
	co.current = inv
	co.mu.Unlock()

	if prev != nil && !sameRequest(prev.tag, inv.tag) {
		prev.abort()
	}
}

// authoritative reports whether inv's resolution is allowed to mutate
// shared state: it must be the slot occupant or share the occupant's
// non-empty tag.
func (co *coordinator[V]) authoritative(inv *invocation[V]) bool {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.current == inv {
		return true
	}
	return co.current != nil && sameRequest(co.current.tag, inv.tag)
}

// abortCurrent aborts the slot occupant, if any. Used on disposal.
func (co *coordinator[V]) abortCurrent() {
	co.mu.Lock()
	prev := co.current
	co.mu.Unlock()

	if prev != nil {
		prev.abort()
	}
}

// sameRequest reports whether two tags mark the same logical request: both
// non-empty and equal.
func sameRequest(a, b string) bool {
	return a != "" && a == b
}
