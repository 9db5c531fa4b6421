// Package refetch provides a high-level façade over the task controller and
// its collaborators (handles, schedulers, logging), enabling observable
// async workers with automatic re-invocation. Most applications interact
// with this package by:
//  1. Creating a Controller via New() with a worker and optional overrides
//  2. Observing state transitions through a Subscriber
//  3. Re-triggering work via Track/TrackTrigger, Fetch or interval polling
//
// The façade delegates orchestration to controller.Controller while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a structured logger.
package refetch

import (
	"context"

	"github.com/hupe1980/refetch/controller"
	"github.com/hupe1980/refetch/core"
)

// Aliases for the vocabulary types so simple consumers only import this
// package.
type (
	// State is the externally visible snapshot of a controller.
	State[V any] = core.State[V]

	// Subscriber observes every state transition.
	Subscriber[V any] = core.Subscriber[V]

	// Worker is the user-supplied async function.
	Worker[V any] = core.Worker[V]

	// Handle represents one in-flight invocation.
	Handle[V any] = core.Handle[V]

	// FetchInfo is the context handed to a ShouldFetch predicate.
	FetchInfo[V any] = core.FetchInfo[V]

	// Failure is the normalized worker failure stored in State.Err.
	Failure = core.Failure

	// Options configures a Controller.
	Options[V any] = controller.Options[V]

	// Controller is the core orchestrator.
	Controller[V any] = controller.Controller[V]
)

var (
	// ErrAborted marks a pre-empted invocation outcome.
	ErrAborted = core.ErrAborted

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = core.ErrClosed
)

// New creates a new Controller wrapping worker with optional overrides.
func New[V any](worker Worker[V], optFns ...func(o *Options[V])) (*Controller[V], error) {
	return controller.New(worker, optFns...)
}

// NewHandle runs fn on its own goroutine and returns a Handle for its
// outcome; see core.NewHandle.
func NewHandle[V any](ctx context.Context, fn func(context.Context) (V, error), opts ...core.HandleOption) Handle[V] {
	return core.NewHandle(ctx, fn, opts...)
}

// WithTag attaches an identity tag to a handle built by NewHandle.
func WithTag(tag string) core.HandleOption { return core.WithTag(tag) }

// IsAborted reports whether err is an abort-class failure.
func IsAborted(err error) bool { return core.IsAborted(err) }
