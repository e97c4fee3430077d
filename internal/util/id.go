package util

import "github.com/google/uuid"

// NewID generates a unique identifier for observations.
func NewID() string { return uuid.NewString() }
