package id

import "github.com/google/uuid"

// GenerateID returns a new random identifier for sessions and simulation runs.
func GenerateID() string {
	return uuid.NewString()
}
