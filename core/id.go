package core

import "github.com/google/uuid"

// NewID returns a random identifier used to correlate collaboration runs in logs.
func NewID() string { return uuid.NewString() }
