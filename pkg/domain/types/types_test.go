package types_test

import (
	"testing"

	"github.com/orgwatch/dirsync/pkg/domain/types"
)

func TestParseMembershipType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.MembershipType
		wantErr bool
	}{
		{name: "standard lowercase", input: "standard", want: types.MembershipStandard},
		{name: "private mixed case", input: "Private", want: types.MembershipPrivate},
		{name: "private uppercase", input: "PRIVATE", want: types.MembershipPrivate},
		{name: "empty resolves to unknown", input: "", want: types.MembershipUnknown},
		{name: "whitespace resolves to unknown", input: "   ", want: types.MembershipUnknown},
		{name: "garbage is an error", input: "shared", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseMembershipType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMembershipType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTeamVisibility(t *testing.T) {
	tests := []struct {
		input string
		want  types.TeamVisibility
	}{
		{input: "Public", want: types.VisibilityPublic},
		{input: "public", want: types.VisibilityPublic},
		{input: " PUBLIC ", want: types.VisibilityPublic},
		{input: "Private", want: types.VisibilityPrivate},
		{input: "", want: types.VisibilityPrivate},
		{input: "hidden", want: types.VisibilityPrivate},
	}

	for _, tt := range tests {
		if got := types.ParseTeamVisibility(tt.input); got != tt.want {
			t.Errorf("ParseTeamVisibility(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLifecycleStatusNormalize(t *testing.T) {
	if got := types.LifecycleStatus("").Normalize(); got != types.StatusActive {
		t.Errorf("Normalize() on empty = %v, want %v", got, types.StatusActive)
	}
	if got := types.StatusArchived.Normalize(); got != types.StatusArchived {
		t.Errorf("Normalize() on archived = %v, want %v", got, types.StatusArchived)
	}
}

func TestLifecycleStatusIsValid(t *testing.T) {
	for _, s := range types.AllLifecycleStatuses() {
		if !s.IsValid() {
			t.Errorf("%v should be valid", s)
		}
	}
	if types.LifecycleStatus("DELETED").IsValid() {
		t.Error("DELETED should not be valid")
	}
}

func TestNewIDs(t *testing.T) {
	if types.NewChannelID() == types.NewChannelID() {
		t.Error("NewChannelID should generate unique IDs")
	}
	if types.NewTeamID() == "" {
		t.Error("NewTeamID should not be empty")
	}
	if types.NewUserID() == "" {
		t.Error("NewUserID should not be empty")
	}
}
