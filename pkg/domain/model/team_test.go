package model_test

import (
	"testing"

	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
)

func TestTeamArchiveIsIdempotent(t *testing.T) {
	team := &model.Team{
		DisplayName: "Math",
		Description: "Mathematics department",
		Status:      types.StatusActive,
	}

	team.Archive()
	if team.Status != types.StatusArchived {
		t.Errorf("Status = %v, want %v", team.Status, types.StatusArchived)
	}
	if team.DisplayName != "ARCHIVED - Math" {
		t.Errorf("DisplayName = %q, want %q", team.DisplayName, "ARCHIVED - Math")
	}
	if team.Description != "ARCHIVED - Mathematics department" {
		t.Errorf("Description = %q", team.Description)
	}

	// Archiving again must not double-prefix
	team.Archive()
	if team.DisplayName != "ARCHIVED - Math" {
		t.Errorf("DisplayName after second archive = %q, want %q", team.DisplayName, "ARCHIVED - Math")
	}
}

func TestTeamUnarchiveStripsMarker(t *testing.T) {
	team := &model.Team{
		DisplayName: "ARCHIVED - Math",
		Description: "ARCHIVED - Mathematics department",
		Status:      types.StatusArchived,
	}

	team.Unarchive()
	if team.Status != types.StatusActive {
		t.Errorf("Status = %v, want %v", team.Status, types.StatusActive)
	}
	if team.DisplayName != "Math" {
		t.Errorf("DisplayName = %q, want %q", team.DisplayName, "Math")
	}
	if team.Description != "Mathematics department" {
		t.Errorf("Description = %q, want %q", team.Description, "Mathematics department")
	}
}

func TestTeamArchiveEmptyDescription(t *testing.T) {
	team := &model.Team{DisplayName: "Math"}
	team.Archive()
	if team.Description != "" {
		t.Errorf("empty description must stay empty, got %q", team.Description)
	}
}

func TestTeamBaseAccessors(t *testing.T) {
	team := &model.Team{
		DisplayName: "ARCHIVED - Science",
		Description: "Plain description",
	}
	if got := team.BaseDisplayName(); got != "Science" {
		t.Errorf("BaseDisplayName() = %q, want %q", got, "Science")
	}
	if got := team.BaseDescription(); got != "Plain description" {
		t.Errorf("BaseDescription() = %q, want %q", got, "Plain description")
	}
}

func TestAssignNewIDIsStable(t *testing.T) {
	ch := &model.Channel{}
	if ch.HasID() {
		t.Fatal("fresh channel must not have an ID")
	}
	ch.AssignNewID()
	if !ch.HasID() {
		t.Fatal("AssignNewID must set an ID")
	}
}
