// Package schedule provides the two timer primitives the controller
// composes: a Debouncer that coalesces bursts of trigger requests into one
// delayed execution, and an Interval that repeats a callback on a fixed
// period. Both are safe for concurrent use.
package schedule
