package types

import "fmt"

// LifecycleStatus represents the lifecycle state of a team or channel.
// Archival is modeled as a status flag, never as removal.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "ACTIVE"
	StatusArchived LifecycleStatus = "ARCHIVED"
)

// AllLifecycleStatuses returns all valid lifecycle statuses
func AllLifecycleStatuses() []LifecycleStatus {
	return []LifecycleStatus{
		StatusActive,
		StatusArchived,
	}
}

// IsValid checks if the lifecycle status is valid
func (s LifecycleStatus) IsValid() bool {
	switch s {
	case StatusActive,
		StatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as StatusActive for
// entities created before the status field existed.
func (s LifecycleStatus) Normalize() LifecycleStatus {
	if s == "" {
		return StatusActive
	}
	return s
}

// String returns the string representation of the lifecycle status
func (s LifecycleStatus) String() string {
	return string(s)
}

// ParseLifecycleStatus parses a string into a LifecycleStatus
func ParseLifecycleStatus(s string) (LifecycleStatus, error) {
	status := LifecycleStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid lifecycle status: %s", s)
	}
	return status, nil
}
