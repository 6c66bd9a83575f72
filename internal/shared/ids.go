package shared

import "github.com/google/uuid"

// NewID returns a unique, time-ordered record id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
