package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrTeamNotFound = errors.New("team not found")
)

// Context keys for error values
const (
	TeamIDKey      = "team_id"
	ExternalIDKey  = "external_id"
	DisplayNameKey = "display_name"
)
