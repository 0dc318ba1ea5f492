package sync

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// UserReconciler is the reconciliation policy for directory user accounts
type UserReconciler struct{}

var _ Reconciler[*model.User] = &UserReconciler{}

// NewUserReconciler creates a new user reconciliation policy
func NewUserReconciler() *UserReconciler {
	return &UserReconciler{}
}

// NewEntity returns a fresh active user
func (r *UserReconciler) NewEntity() *model.User {
	return &model.User{IsActive: true}
}

// ValidateRecord requires both an external identifier and a principal name
func (r *UserReconciler) ValidateRecord(ctx context.Context, rec *model.Record) error {
	if _, err := ExtractExternalID(rec); err != nil {
		return goerr.Wrap(ErrMissingRequiredField, "user external identifier is required",
			goerr.V(FieldKey, "Id"))
	}
	upn := ExtractString(ctx, rec, "UserPrincipalName", "")
	if strings.TrimSpace(upn) == "" {
		return goerr.Wrap(ErrMissingRequiredField, "user principal name is required",
			goerr.V(FieldKey, "UserPrincipalName"))
	}
	return nil
}

// MapFields copies user properties from the record onto the target.
//
// A soft-deleted user is inert: when updating an existing user whose
// IsActive flag is false, mapping returns without touching a single field.
func (r *UserReconciler) MapFields(ctx context.Context, rec *model.Record, user *model.User, isUpdate bool) error {
	if isUpdate && !user.IsActive {
		logging.From(ctx).Debug("skipping field mapping for soft-deleted user",
			"user_id", user.ID)
		return nil
	}

	if externalID, err := ExtractExternalID(rec); err == nil {
		user.ExternalID = externalID
	}

	user.FirstName = ExtractString(ctx, rec, "GivenName", user.FirstName)
	user.LastName = ExtractString(ctx, rec, "Surname", user.LastName)

	// The principal name addresses the user everywhere; never blank it out
	if upn := strings.TrimSpace(ExtractString(ctx, rec, "UserPrincipalName", "")); upn != "" {
		user.PrincipalName = upn
	}

	if phone := r.resolvePhone(ctx, rec); phone != "" {
		user.Phone = phone
	}

	user.AlternateEmail = ExtractString(ctx, rec, "Mail", user.AlternateEmail)
	user.JobTitle = ExtractString(ctx, rec, "JobTitle", user.JobTitle)

	// Deactivation is a deliberate administrative decision, never a sync
	// side effect. The directory's disablement signal is surfaced in the
	// log and nothing else.
	if enabled := ExtractBool(ctx, rec, "AccountEnabled", true); !enabled {
		logging.From(ctx).Warn("directory reports account disabled; local deactivation requires an explicit administrative action",
			"principal_name", user.PrincipalName)
	}

	if !isUpdate {
		if ts := ExtractTime(ctx, rec, "CreatedDateTime"); ts != nil {
			user.Audit.CreatedAt = *ts
		}
	}

	return nil
}

// DetectChanges reports whether the mapped user differs from the stored
// one. A soft-deleted user never needs a sync.
func (r *UserReconciler) DetectChanges(ctx context.Context, mapped, existing *model.User) bool {
	if !existing.IsActive {
		return false
	}

	return StringChanged(mapped.FirstName, existing.FirstName) ||
		StringChanged(mapped.LastName, existing.LastName) ||
		StringChanged(mapped.PrincipalName, existing.PrincipalName) ||
		StringChanged(mapped.Phone, existing.Phone) ||
		StringChanged(mapped.JobTitle, existing.JobTitle)
}

// PostSync is a no-op for users
func (r *UserReconciler) PostSync(ctx context.Context, rec *model.Record, user *model.User, isUpdate bool) error {
	return nil
}

// resolvePhone prefers the mobile phone and falls back to the first entry
// of the business phones array
func (r *UserReconciler) resolvePhone(ctx context.Context, rec *model.Record) string {
	if mobile := strings.TrimSpace(ExtractString(ctx, rec, "MobilePhone", "")); mobile != "" {
		return mobile
	}
	for _, v := range ExtractSlice(ctx, rec, "BusinessPhones") {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
