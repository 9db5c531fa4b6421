package core

import "time"

// State is the externally visible snapshot of a controller. The controller
// mutates state only as a whole: it builds a new snapshot under its lock and
// hands copies to the configured subscriber, so a State received by a
// subscriber is never modified afterwards.
//
// Data outlives failed and aborted invocations; it is replaced only by the
// next successful completion and cleared only by an explicit Reset. Err and
// Data are never both produced by the same completion.
type State[V any] struct {
	// Data is the last successfully produced (and mapped) value, nil until
	// the first success and after Reset. The pointed-to value must be
	// treated as read-only.
	Data *V

	// Err is the normalized failure of the last non-aborted failed
	// invocation. It is cleared when the next invocation starts and on
	// success.
	Err error

	// Loading is true strictly while an invocation that is allowed to
	// affect this state is outstanding.
	Loading bool

	// Loaded reports whether at least one invocation completed successfully
	// since the last Reset.
	Loaded bool

	// LoadedTimes counts successful completions since the last Reset.
	LoadedTimes int

	// RunningInterval is the active polling period, 0 when polling is off.
	RunningInterval time.Duration

	// Revision increments with every mutation and survives Reset.
	// Subscriber deliveries from concurrent completions may arrive out of
	// order; compare revisions to discard stale snapshots.
	Revision uint64
}

// Subscriber observes every state transition of a controller: invocation
// start, success, failure, Reset and interval start/stop. It runs outside
// the controller lock and may call back into the controller.
type Subscriber[V any] func(State[V])
