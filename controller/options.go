package controller

import (
	"fmt"
	"time"

	"github.com/hupe1980/refetch/core"
	"github.com/hupe1980/refetch/internal/util"
	"github.com/hupe1980/refetch/logging"
)

// MinTriggerInterval is the exclusive lower bound for polling periods.
// Shorter periods are rejected at construction time.
const MinTriggerInterval = 500 * time.Millisecond

// Options holds dependency + configuration overrides passed to New(). All
// fields are independent and optional.
type Options[V any] struct {
	// Deps are the initial dependency values for the deps channel. Any
	// later element-wise change passed to Track schedules one debounced
	// automatic invocation. Elements must be comparable.
	Deps []any

	// DepsDebounce delays automatic invocations from the deps channel.
	DepsDebounce time.Duration

	// TriggerDeps enables the independently tracked trigger channel. A
	// non-nil empty slice enables the channel without initial values;
	// nil leaves it disabled.
	TriggerDeps []any

	// TriggerDepsDebounce delays automatic invocations from the trigger
	// channel.
	TriggerDepsDebounce time.Duration

	// TriggerInterval, when set, starts polling at construction. Must be
	// greater than MinTriggerInterval.
	TriggerInterval time.Duration

	// ShouldFetch gates automatic invocations. When it returns false the
	// worker is not called and no state changes. Manual Fetch calls are
	// not gated.
	ShouldFetch func(core.FetchInfo[V]) bool

	// Mapper transforms a successful raw result before it is stored.
	Mapper func(V) V

	// Subscriber observes every state transition.
	Subscriber core.Subscriber[V]

	// Logger receives controller activity. Defaults to NoOpLogger.
	Logger logging.Logger
}

func defaultOptions[V any]() Options[V] {
	return Options[V]{
		Logger: logging.NoOpLogger{},
	}
}

func (o *Options[V]) validate() error {
	if o.TriggerInterval != 0 && o.TriggerInterval <= MinTriggerInterval {
		return &util.ValidationError{
			Field:   "TriggerInterval",
			Value:   o.TriggerInterval,
			Message: fmt.Sprintf("must be greater than %s", MinTriggerInterval),
		}
	}
	if o.DepsDebounce < 0 {
		return &util.ValidationError{
			Field:   "DepsDebounce",
			Value:   o.DepsDebounce,
			Message: "must not be negative",
		}
	}
	if o.TriggerDepsDebounce < 0 {
		return &util.ValidationError{
			Field:   "TriggerDepsDebounce",
			Value:   o.TriggerDepsDebounce,
			Message: "must not be negative",
		}
	}
	if err := validateDeps("Deps", o.Deps); err != nil {
		return err
	}
	return validateDeps("TriggerDeps", o.TriggerDeps)
}

func validateDeps(field string, deps []any) error {
	for i, d := range deps {
		if !util.Comparable(d) {
			return &util.ValidationError{
				Field:   field,
				Value:   d,
				Message: fmt.Sprintf("element %d is not comparable", i),
			}
		}
	}
	return nil
}

// depsEqual compares two dependency sequences element-wise and shallow.
// Non-comparable elements are treated as changed rather than panicking.
func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !util.Comparable(a[i]) || !util.Comparable(b[i]) {
			return false
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
