package sync

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// TeamReconciler is the reconciliation policy for directory teams
type TeamReconciler struct{}

var _ Reconciler[*model.Team] = &TeamReconciler{}

// NewTeamReconciler creates a new team reconciliation policy
func NewTeamReconciler() *TeamReconciler {
	return &TeamReconciler{}
}

// NewEntity returns a fresh active team
func (r *TeamReconciler) NewEntity() *model.Team {
	return &model.Team{IsActive: true}
}

// ValidateRecord requires both an external identifier and a display name
func (r *TeamReconciler) ValidateRecord(ctx context.Context, rec *model.Record) error {
	if _, err := ExtractExternalID(rec); err != nil {
		return goerr.Wrap(ErrMissingRequiredField, "team external identifier is required",
			goerr.V(FieldKey, "Id"))
	}
	name := ExtractString(ctx, rec, "DisplayName", "")
	if strings.TrimSpace(name) == "" {
		return goerr.Wrap(ErrMissingRequiredField, "team display name is required",
			goerr.V(FieldKey, "DisplayName"))
	}
	return nil
}

// MapFields copies team properties from the record onto the target and
// reconciles the archival state
func (r *TeamReconciler) MapFields(ctx context.Context, rec *model.Record, team *model.Team, isUpdate bool) error {
	if externalID, err := ExtractExternalID(rec); err == nil {
		team.ExternalID = externalID
	}

	// Map the unprefixed base values first; the archival marker is
	// re-applied below when the team is (or becomes) archived
	team.DisplayName = ExtractString(ctx, rec, "DisplayName", team.BaseDisplayName())
	team.Description = ExtractString(ctx, rec, "Description", team.BaseDescription())
	team.Visibility = types.ParseTeamVisibility(ExtractString(ctx, rec, "Visibility", ""))

	archived := ExtractBool(ctx, rec, "IsArchived", false)
	switch {
	case archived:
		team.Archive()
	case team.Status == types.StatusArchived:
		team.Unarchive()
	default:
		team.Status = team.Status.Normalize()
	}

	if !isUpdate {
		if ts := ExtractTime(ctx, rec, "CreatedDateTime"); ts != nil {
			team.Audit.CreatedAt = *ts
		}
	}

	// Owner is populated from the first resolvable entry of the owners
	// array; absent or malformed owner data leaves the current value alone
	if owner := r.resolveOwner(ctx, rec); owner != "" {
		team.OwnerUPN = owner
	}

	return nil
}

// DetectChanges compares the team fields that matter for a sync. A
// mismatch between external identifiers is a possible mis-association and
// is logged, but by itself neither counts as a change nor aborts the sync.
func (r *TeamReconciler) DetectChanges(ctx context.Context, mapped, existing *model.Team) bool {
	if mapped.ExternalID != existing.ExternalID {
		logging.From(ctx).Warn("team external identifier mismatch, possible mis-association",
			"mapped_external_id", mapped.ExternalID,
			"existing_external_id", existing.ExternalID,
			"team_id", existing.ID)
	}

	return StringChanged(mapped.DisplayName, existing.DisplayName) ||
		StringChanged(mapped.Description, existing.Description) ||
		mapped.Visibility != existing.Visibility ||
		mapped.Status != existing.Status.Normalize() ||
		StringChanged(mapped.OwnerUPN, existing.OwnerUPN)
}

// PostSync is reserved for cascading sync of the team's channels and members
func (r *TeamReconciler) PostSync(ctx context.Context, rec *model.Record, team *model.Team, isUpdate bool) error {
	return nil
}

func (r *TeamReconciler) resolveOwner(ctx context.Context, rec *model.Record) string {
	owners := ExtractSlice(ctx, rec, "Owners")
	if len(owners) == 0 {
		return ""
	}
	switch v := owners[0].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		nested := model.RecordFrom(v)
		return strings.TrimSpace(ExtractString(ctx, nested, "UserPrincipalName", ""))
	case *model.Record:
		return strings.TrimSpace(ExtractString(ctx, v, "UserPrincipalName", ""))
	default:
		logging.From(ctx).Warn("malformed owner entry in team record, keeping current owner")
		return ""
	}
}
