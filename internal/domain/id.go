package domain

import "github.com/google/uuid"

// NewID generates a UUIDv7 string for application-owned entities
// (cube links and item links created during a generation run).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
