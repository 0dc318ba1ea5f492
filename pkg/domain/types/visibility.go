package types

import "strings"

// TeamVisibility represents whether a team is discoverable by anyone
// in the organization or restricted to its members
type TeamVisibility string

const (
	VisibilityPublic  TeamVisibility = "Public"
	VisibilityPrivate TeamVisibility = "Private"
)

// AllTeamVisibilities returns all valid team visibilities
func AllTeamVisibilities() []TeamVisibility {
	return []TeamVisibility{
		VisibilityPublic,
		VisibilityPrivate,
	}
}

// IsValid checks if the team visibility is valid
func (v TeamVisibility) IsValid() bool {
	switch v {
	case VisibilityPublic,
		VisibilityPrivate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the team visibility
func (v TeamVisibility) String() string {
	return string(v)
}

// ParseTeamVisibility parses a string into a TeamVisibility,
// case-insensitively. Anything that is not recognizably public resolves
// to VisibilityPrivate as the safer default.
func ParseTeamVisibility(s string) TeamVisibility {
	if strings.EqualFold(strings.TrimSpace(s), "public") {
		return VisibilityPublic
	}
	return VisibilityPrivate
}
