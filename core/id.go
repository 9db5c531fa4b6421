package core

import "github.com/google/uuid"

// NewID generates a unique invocation identifier used for log correlation
// and failure reporting.
func NewID() string { return uuid.NewString() }
