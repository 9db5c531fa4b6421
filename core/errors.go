package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAborted marks an invocation outcome that was pre-empted by the
	// controller's own abort. It never reaches State.Err.
	ErrAborted = errors.New("refetch: invocation aborted")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("refetch: controller closed")
)

// IsAborted reports whether err is an abort-class failure.
func IsAborted(err error) bool { return errors.Is(err, ErrAborted) }

// Failure is the normalized form of a worker failure stored in State.Err.
// It wraps the raw cause and records which invocation produced it and when.
type Failure struct {
	// InvocationID correlates the failure with controller logs.
	InvocationID string

	// At is the UTC completion time of the failed invocation.
	At time.Time

	// Err is the raw error returned by the worker.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("refetch: invocation %s failed: %v", f.InvocationID, f.Err)
}

// Unwrap exposes the raw cause for errors.Is / errors.As.
func (f *Failure) Unwrap() error { return f.Err }

// Normalize wraps a worker error into a Failure. Already-normalized errors
// are returned unchanged so repeated normalization is safe.
func Normalize(invocationID string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{
		InvocationID: invocationID,
		At:           time.Now().UTC(),
		Err:          err,
	}
}
