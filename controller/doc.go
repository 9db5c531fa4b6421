// Package controller implements the task controller: it owns the
// observable state, decides when to invoke the worker, threads every
// invocation through the cancellation coordinator, applies the optional
// result mapper and reports each state transition to the configured
// subscriber. It composes the two debounce channels and the interval from
// package schedule.
package controller
