package controller

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/refetch/core"
	"github.com/hupe1980/refetch/internal/util"
	"github.com/hupe1980/refetch/logging"
	"github.com/hupe1980/refetch/schedule"
)

// Controller wraps a single user-supplied worker and exposes an observable
// lifecycle around it: pending/success/error state, debounced re-invocation
// when tracked dependencies change, interval polling, and the cancellation
// protocol for overlapping invocations. Public methods are safe for
// concurrent use.
//
// The worker reference used for automatic invocations is the one captured
// at the last dependency change (or at construction); Track updates the
// reference used by manual Fetch calls on every call. This decouples which
// callable actually runs from how often the caller reconstructs its
// closures.
type Controller[V any] struct {
	opts   Options[V]
	logger *logging.FetchLogger

	// lifetime is the parent of every automatic invocation context;
	// canceled on Close.
	lifetime context.Context
	cancel   context.CancelFunc

	depsDebounce    schedule.Debouncer
	triggerDebounce schedule.Debouncer
	interval        *schedule.Interval
	coord           coordinator[V]

	mu             sync.Mutex
	state          core.State[V]
	worker         core.Worker[V] // most recently supplied, used by Fetch
	captured       core.Worker[V] // captured at last deps change, used by automatic invocations
	deps           []any
	triggerDeps    []any
	triggerEnabled bool
	initial        bool
	closed         bool
}

// New validates the options, builds the initial state, reports it, and
// schedules the initial automatic invocation on the deps channel. When
// TriggerInterval is configured polling starts immediately with the first
// periodic run suppressed, since the initial invocation covers it.
//
// Configuration errors are returned synchronously and never surface in
// observable state.
func New[V any](worker core.Worker[V], optFns ...func(o *Options[V])) (*Controller[V], error) {
	if worker == nil {
		return nil, &util.ValidationError{Field: "worker", Message: "must not be nil"}
	}

	opts := defaultOptions[V]()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	lifetime, cancel := context.WithCancel(context.Background())

	c := &Controller[V]{
		opts:           opts,
		logger:         logging.NewFetchLogger(opts.Logger).WithComponent("controller"),
		lifetime:       lifetime,
		cancel:         cancel,
		worker:         worker,
		captured:       worker,
		deps:           cloneDeps(opts.Deps),
		triggerDeps:    cloneDeps(opts.TriggerDeps),
		triggerEnabled: opts.TriggerDeps != nil,
		initial:        true,
	}
	c.interval = schedule.NewInterval(c.autoInvoke)

	c.state = core.State[V]{
		Loading:         c.shouldFetchLocked(worker),
		RunningInterval: opts.TriggerInterval,
		Revision:        1,
	}
	c.report(c.state)

	c.depsDebounce.Schedule(opts.DepsDebounce, c.autoInvoke)
	if opts.TriggerInterval > 0 {
		c.interval.Start(opts.TriggerInterval, false)
	}

	return c, nil
}

// Fetch manually starts one invocation, forwarding args to the worker after
// the controller-supplied context. It is never debounced or gated by
// ShouldFetch. It returns the transformed result on success, ErrAborted
// when the invocation was pre-empted before it could affect state, and the
// normalized failure otherwise.
func (c *Controller[V]) Fetch(ctx context.Context, args ...any) (V, error) {
	var zero V

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, core.ErrClosed
	}
	w := c.worker
	c.mu.Unlock()

	return c.run(ctx, w, args...)
}

// Track records the caller's current worker reference and dependency
// values. When the values differ element-wise from the last tracked ones,
// the worker is captured for automatic use and one debounced automatic
// invocation is scheduled; changes inside the debounce window coalesce,
// last change wins.
func (c *Controller[V]) Track(worker core.Worker[V], deps ...any) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.worker = worker
	if depsEqual(c.deps, deps) {
		c.mu.Unlock()
		return
	}
	c.deps = cloneDeps(deps)
	c.captured = worker
	delay := c.opts.DepsDebounce
	c.mu.Unlock()

	c.logger.Debug("deps changed, scheduling invocation", "debounce", delay)
	c.depsDebounce.Schedule(delay, c.autoInvoke)
}

// TrackTrigger records trigger dependency values on the independently
// debounced trigger channel. The channel must have been enabled via the
// TriggerDeps option (a non-nil, possibly empty slice); otherwise the call
// is a no-op. Trigger changes never recapture the worker.
func (c *Controller[V]) TrackTrigger(deps ...any) {
	c.mu.Lock()
	if c.closed || !c.triggerEnabled {
		c.mu.Unlock()
		return
	}
	if depsEqual(c.triggerDeps, deps) {
		c.mu.Unlock()
		return
	}
	c.triggerDeps = cloneDeps(deps)
	delay := c.opts.TriggerDepsDebounce
	c.mu.Unlock()

	c.logger.Debug("trigger deps changed, scheduling invocation", "debounce", delay)
	c.triggerDebounce.Schedule(delay, c.autoInvoke)
}

// Reset restores Data, Err, Loaded and LoadedTimes to their defaults and
// reports the reset state. In-flight invocations and an active interval are
// not affected.
func (c *Controller[V]) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Data = nil
	c.state.Err = nil
	c.state.Loaded = false
	c.state.LoadedTimes = 0
	c.state.Revision++
	snap := c.state
	c.mu.Unlock()

	c.report(snap)
}

// StartInterval activates polling: the first periodic invocation runs
// immediately, then repeats every period. A previously active interval is
// overridden. Periods of MinTriggerInterval or less are rejected.
func (c *Controller[V]) StartInterval(period time.Duration) error {
	if period <= MinTriggerInterval {
		return &util.ValidationError{
			Field:   "period",
			Value:   period,
			Message: "must be greater than " + MinTriggerInterval.String(),
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return core.ErrClosed
	}
	c.state.RunningInterval = period
	c.state.Revision++
	snap := c.state
	// Started under the lock so a concurrent Close cannot slip between the
	// closed-check and the ticker goroutine spawning.
	c.interval.Start(period, true)
	c.mu.Unlock()

	c.report(snap)
	c.logger.Info("interval started", "period", period)
	return nil
}

// StopInterval deactivates polling. Safe to call when no interval is
// active.
func (c *Controller[V]) StopInterval() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.interval.Stop()
	c.state.RunningInterval = 0
	c.state.Revision++
	snap := c.state
	c.mu.Unlock()

	c.report(snap)
	c.logger.Info("interval stopped")
}

// State returns a copy of the current snapshot.
func (c *Controller[V]) State() core.State[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close disposes the controller: the current invocation is aborted, both
// debounce channels and the interval are canceled, and no further state is
// reported. Idempotent.
func (c *Controller[V]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	// The schedulers are stopped under the lock so no Start racing with
	// Close can leave a live ticker behind.
	c.depsDebounce.Cancel()
	c.triggerDebounce.Cancel()
	c.interval.Stop()
	c.mu.Unlock()

	c.coord.abortCurrent()
	c.cancel()
	c.logger.Debug("controller closed")
}

// autoInvoke runs one automatic invocation with the captured worker, gated
// by ShouldFetch. Debounce timers and the interval both land here.
func (c *Controller[V]) autoInvoke() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	w := c.captured
	if !c.shouldFetchLocked(w) {
		c.mu.Unlock()
		c.logger.Debug("invocation suppressed by predicate")
		return
	}
	c.mu.Unlock()

	_, _ = c.run(c.lifetime, w)
}

// run executes the invocation protocol: mark loading, obtain a handle,
// register it with the coordinator, await it, and apply the outcome if the
// handle is still authoritative.
func (c *Controller[V]) run(ctx context.Context, w core.Worker[V], args ...any) (V, error) {
	var zero V
	id := core.NewID()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, core.ErrClosed
	}
	c.initial = false
	c.state.Loading = true
	c.state.Err = nil
	c.state.Revision++
	snap := c.state
	c.mu.Unlock()
	c.report(snap)

	logger := c.logger.WithInvocation(id)

	runCtx, cancelRun := context.WithCancel(ctx)
	h := w(runCtx, args...)

	var tag string
	if t, ok := h.(core.Tagged); ok {
		tag = t.Tag()
	}
	inv := &invocation[V]{id: id, handle: h, tag: tag, cancel: cancelRun}
	c.coord.arrive(inv)
	logger.Debug("invocation started", "tag", tag)

	v, err := h.Wait()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancelRun()
		return zero, core.ErrClosed
	}

	// Only aborts issued through the coordinator bypass the state machine.
	// An abort-class error from anywhere else (the caller aborting its own
	// handle, a shared cancellation source) is an ordinary worker failure.
	if inv.aborted.Load() {
		c.mu.Unlock()
		cancelRun()
		logger.Debug("invocation aborted")
		return zero, core.ErrAborted
	}

	if !c.coord.authoritative(inv) {
		// Pre-empted, but the worker ignored the advisory abort. The
		// resolution is discarded silently.
		c.mu.Unlock()
		cancelRun()
		logger.Debug("invocation resolution discarded")
		return zero, core.ErrAborted
	}

	if err != nil {
		failure := core.Normalize(id, err)
		c.state.Err = failure
		c.state.Loading = false
		c.state.Revision++
		snap = c.state
		c.mu.Unlock()
		cancelRun()

		c.report(snap)
		logger.Error("invocation failed", "error", err)
		return zero, failure
	}

	if c.opts.Mapper != nil {
		v = c.opts.Mapper(v)
	}
	out := v
	c.state.Data = &out
	c.state.Loaded = true
	c.state.LoadedTimes++
	c.state.Loading = false
	c.state.Revision++
	snap = c.state
	c.mu.Unlock()
	cancelRun()

	c.report(snap)
	logger.Debug("invocation succeeded", "loaded_times", snap.LoadedTimes)
	return out, nil
}

// shouldFetchLocked evaluates the ShouldFetch predicate against the current
// state. Callers must hold c.mu.
func (c *Controller[V]) shouldFetchLocked(w core.Worker[V]) bool {
	if c.opts.ShouldFetch == nil {
		return true
	}
	return c.opts.ShouldFetch(core.FetchInfo[V]{
		Initial:     c.initial,
		Loading:     c.state.Loading,
		Loaded:      c.state.Loaded,
		LoadedTimes: c.state.LoadedTimes,
		Worker:      w,
	})
}

// report delivers a snapshot to the subscriber outside the controller lock,
// so subscribers may call back into the controller. The closed flag is
// re-checked at delivery time so a snapshot built just before Close is not
// reported after disposal. Deliveries from concurrent completions are not
// serialized; subscribers order them by State.Revision.
func (c *Controller[V]) report(snap core.State[V]) {
	if c.opts.Subscriber == nil {
		return
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	c.opts.Subscriber(snap)
}

func cloneDeps(deps []any) []any {
	if deps == nil {
		return nil
	}
	out := make([]any, len(deps))
	copy(out, deps)
	return out
}
