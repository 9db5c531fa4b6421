// Package util holds validation helpers shared by the public packages.
// It lives in internal to avoid committing to API stability prematurely.
package util

import (
	"fmt"
	"reflect"
)

// ValidationError represents a configuration error with detailed
// information. It is returned synchronously at construction time and never
// stored in observable state.
type ValidationError struct {
	Field   string `json:"field"`   // Option that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for option '%s': %s", e.Field, e.Message)
}

// Comparable reports whether v can be compared with ==. Dependency values
// must be comparable so change detection stays panic-free.
func Comparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
