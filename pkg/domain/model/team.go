package model

import (
	"strings"

	"github.com/orgwatch/dirsync/pkg/domain/types"
)

// ArchivedMarker is the prefix applied to a team's display name and
// description while its status is Archived. The team's Status field is the
// single source of truth for whether the marker is present.
const ArchivedMarker = "ARCHIVED - "

// Team represents a directory group stored in the database
type Team struct {
	ID          types.TeamID
	ExternalID  string // identifier in the external directory service
	DisplayName string
	Description string
	Visibility  types.TeamVisibility
	Status      types.LifecycleStatus
	OwnerUPN    string // principal name of the first resolvable owner

	IsActive bool
	Audit    Audit
}

// HasID reports whether a local identifier has been assigned
func (t *Team) HasID() bool {
	return t.ID != ""
}

// AssignNewID assigns a fresh local identifier
func (t *Team) AssignNewID() {
	t.ID = types.NewTeamID()
}

// AuditMeta returns the mutable audit metadata of the team
func (t *Team) AuditMeta() *Audit {
	return &t.Audit
}

// BaseDisplayName returns the display name with a previously applied
// archival marker removed
func (t *Team) BaseDisplayName() string {
	return strings.TrimPrefix(t.DisplayName, ArchivedMarker)
}

// BaseDescription returns the description with a previously applied
// archival marker removed
func (t *Team) BaseDescription() string {
	return strings.TrimPrefix(t.Description, ArchivedMarker)
}

// Archive marks the team archived and applies the archival marker to the
// display name and description. Applying it twice never double-prefixes.
func (t *Team) Archive() {
	t.Status = types.StatusArchived
	if !strings.HasPrefix(t.DisplayName, ArchivedMarker) {
		t.DisplayName = ArchivedMarker + t.DisplayName
	}
	if t.Description != "" && !strings.HasPrefix(t.Description, ArchivedMarker) {
		t.Description = ArchivedMarker + t.Description
	}
}

// Unarchive marks the team active again and strips the archival marker
func (t *Team) Unarchive() {
	t.Status = types.StatusActive
	t.DisplayName = t.BaseDisplayName()
	t.Description = t.BaseDescription()
}
