package types

import "github.com/google/uuid"

// ChannelID represents a unique identifier for a Channel entity
type ChannelID string

// TeamID represents a unique identifier for a Team entity
type TeamID string

// UserID represents a unique identifier for a User entity
type UserID string

// NewChannelID generates a new random ChannelID
func NewChannelID() ChannelID {
	return ChannelID(uuid.NewString())
}

// NewTeamID generates a new random TeamID
func NewTeamID() TeamID {
	return TeamID(uuid.NewString())
}

// NewUserID generates a new random UserID
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

func (x ChannelID) String() string { return string(x) }
func (x TeamID) String() string    { return string(x) }
func (x UserID) String() string    { return string(x) }
