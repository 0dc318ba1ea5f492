package types

import (
	"fmt"
	"strings"
)

// MembershipType represents the membership model of a channel
type MembershipType string

const (
	MembershipStandard MembershipType = "Standard"
	MembershipPrivate  MembershipType = "Private"
	MembershipUnknown  MembershipType = "Unknown"
)

// AllMembershipTypes returns all valid membership types
func AllMembershipTypes() []MembershipType {
	return []MembershipType{
		MembershipStandard,
		MembershipPrivate,
		MembershipUnknown,
	}
}

// IsValid checks if the membership type is valid
func (m MembershipType) IsValid() bool {
	switch m {
	case MembershipStandard,
		MembershipPrivate,
		MembershipUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the membership type
func (m MembershipType) String() string {
	return string(m)
}

// ParseMembershipType parses a string into a MembershipType, case-insensitively.
// Empty input yields MembershipUnknown.
func ParseMembershipType(s string) (MembershipType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return MembershipUnknown, nil
	case "standard":
		return MembershipStandard, nil
	case "private":
		return MembershipPrivate, nil
	case "unknown":
		return MembershipUnknown, nil
	default:
		return "", fmt.Errorf("invalid membership type: %s", s)
	}
}
