package util

import "github.com/google/uuid"

// NewID generates a new unique identifier used for request and run correlation.
func NewID() string { return uuid.NewString() }
