package core

import (
	"context"
	"errors"
	"sync/atomic"
)

// Handle represents one in-flight invocation: an awaitable that eventually
// yields a value or an error. Wait may be called from multiple goroutines;
// it always returns the same outcome once Done is closed.
//
// Handles may optionally implement Abortable and Tagged; the controller
// discovers both capabilities via type assertion.
type Handle[V any] interface {
	// Done is closed when the invocation has completed or failed.
	Done() <-chan struct{}

	// Wait blocks until completion and returns the outcome.
	Wait() (V, error)
}

// Abortable is implemented by handles that support cooperative cancellation.
// Abort is advisory and idempotent: the worker's contract is to observe it
// and fail with an abort-class error, but the controller does not depend on
// that for correctness.
type Abortable interface {
	Abort()
}

// Tagged is implemented by handles that carry an identity tag. Two handles
// with equal non-empty tags describe the same logical request and are never
// mutually aborted.
type Tagged interface {
	Tag() string
}

// HandleOption configures a handle built by NewHandle.
type HandleOption func(*handleOptions)

type handleOptions struct {
	tag string
}

// WithTag attaches an identity tag to the handle.
func WithTag(tag string) HandleOption {
	return func(o *handleOptions) { o.tag = tag }
}

// NewHandle runs fn on its own goroutine and returns a Handle for its
// outcome. The function receives a context derived from ctx that is
// canceled when the handle is aborted; a run that fails after an abort is
// reported as abort-class (ErrAborted).
func NewHandle[V any](ctx context.Context, fn func(context.Context) (V, error), opts ...HandleOption) Handle[V] {
	var o handleOptions
	for _, opt := range opts {
		opt(&o)
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &goHandle[V]{
		done:   make(chan struct{}),
		tag:    o.tag,
		cancel: cancel,
	}

	go func() {
		defer close(h.done)

		v, err := fn(runCtx)
		if err != nil && h.abortRequested.Load() {
			err = errors.Join(ErrAborted, err)
		}
		h.val, h.err = v, err
	}()

	return h
}

type goHandle[V any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	tag    string

	abortRequested atomic.Bool

	// val and err are written once before done is closed.
	val V
	err error
}

func (h *goHandle[V]) Done() <-chan struct{} { return h.done }

func (h *goHandle[V]) Wait() (V, error) {
	<-h.done
	return h.val, h.err
}

func (h *goHandle[V]) Abort() {
	h.abortRequested.Store(true)
	h.cancel()
}

func (h *goHandle[V]) Tag() string { return h.tag }
