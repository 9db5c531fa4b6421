package core

import "context"

// Worker is the user-supplied function a controller invokes. The context is
// supplied by the controller and is canceled when the invocation is aborted
// or the controller is closed; workers must pass it through to whatever
// transport they use. Additional arguments from Controller.Fetch are
// forwarded verbatim.
//
// A Worker returns quickly with a Handle describing the in-flight work; it
// must not block until the result is ready itself.
type Worker[V any] func(ctx context.Context, args ...any) Handle[V]

// FetchInfo is the context handed to a ShouldFetch predicate before an
// automatic invocation is allowed to proceed.
type FetchInfo[V any] struct {
	// Initial is true only for the first invocation after construction.
	Initial bool

	// Loading, Loaded and LoadedTimes mirror the current State fields.
	Loading     bool
	Loaded      bool
	LoadedTimes int

	// Worker is the function that would run if the predicate allows it.
	Worker Worker[V]
}
