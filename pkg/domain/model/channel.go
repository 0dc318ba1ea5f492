package model

import (
	"time"

	"github.com/orgwatch/dirsync/pkg/domain/types"
)

// Channel represents a sub-channel of a team stored in the database
type Channel struct {
	ID             types.ChannelID
	TeamID         types.TeamID // owning team
	DisplayName    string
	Description    string
	MembershipType types.MembershipType
	WebURL         string

	// Activity counters reported by the directory service. Never negative.
	FilesCount     int64
	FilesSize      int64
	MessagesCount  int64
	LastActivityAt *time.Time
	LastMessageAt  *time.Time

	NotificationsEnabled bool
	IsModerated          bool
	Category             string
	Tags                 []string
	SortOrder            int

	IsPrivate bool
	// IsGeneral marks the default/primary channel of a team. A general
	// channel always carries MembershipStandard.
	IsGeneral bool

	Status   types.LifecycleStatus
	IsActive bool
	Audit    Audit
}

// HasID reports whether a local identifier has been assigned
func (c *Channel) HasID() bool {
	return c.ID != ""
}

// AssignNewID assigns a fresh local identifier. Identifiers are immutable
// once assigned; callers must check HasID first.
func (c *Channel) AssignNewID() {
	c.ID = types.NewChannelID()
}

// AuditMeta returns the mutable audit metadata of the channel
func (c *Channel) AuditMeta() *Audit {
	return &c.Audit
}
