package sync

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// DefaultActor is recorded in audit fields when no actor is supplied
const DefaultActor = "sync"

// Entity is the contract every synchronized entity satisfies
type Entity interface {
	HasID() bool
	AssignNewID()
	AuditMeta() *model.Audit
}

// Reconciler is the entity-specific policy plugged into Synchronize.
// Implementations decide how to validate an external record, how its
// properties map onto entity fields, and what counts as a meaningful
// difference between a mapped and a stored entity.
type Reconciler[E Entity] interface {
	// NewEntity returns a fresh entity in its creation default state
	NewEntity() E

	// ValidateRecord checks that the record carries everything this
	// entity type requires. May fail with ErrMissingRequiredField.
	ValidateRecord(ctx context.Context, rec *model.Record) error

	// MapFields copies record properties onto the target entity. It must
	// be idempotent: re-applying the same record to the same target
	// yields the same result. It never performs I/O.
	MapFields(ctx context.Context, rec *model.Record, target E, isUpdate bool) error

	// DetectChanges reports whether the freshly mapped entity differs
	// meaningfully from the stored one
	DetectChanges(ctx context.Context, mapped, existing E) bool

	// PostSync runs after audit stamping; reserved for cascading sync of
	// related sub-entities
	PostSync(ctx context.Context, rec *model.Record, target E, isUpdate bool) error
}

// missingIDTolerator is implemented by policies that self-heal a record
// without an identifier instead of failing the sync
type missingIDTolerator interface {
	TolerateMissingID() bool
}

// identifier key spellings the directory service has been observed to emit
var identifierKeys = []string{"Id", "id", "ID"}

// ExtractExternalID resolves the external identifier of a record, trying
// the known key spellings in order
func ExtractExternalID(rec *model.Record) (string, error) {
	if rec == nil {
		return "", goerr.Wrap(ErrInvalidRecord, "cannot extract identifier from nil record")
	}
	for _, key := range identifierKeys {
		if raw, ok := rec.Get(key); ok {
			if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), nil
			}
		}
	}
	return "", goerr.Wrap(ErrMissingIdentifier, "no identifier key in external record",
		goerr.V(RecordKeysKey, rec.Keys()))
}

// Synchronize produces an up-to-date entity from an external record: it
// validates the record, maps its properties onto the existing entity (or a
// fresh one when existing is nil), stamps audit metadata, and runs the
// policy's post-sync hook. The caller is responsible for persisting the
// returned entity; nothing is written here.
//
// Validation failures abort the call before anything is mutated.
func Synchronize[E Entity](ctx context.Context, policy Reconciler[E], rec *model.Record, existing E, actor string) (E, error) {
	var zero E
	if rec == nil {
		return zero, goerr.Wrap(ErrInvalidRecord, "cannot synchronize nil record")
	}

	if err := policy.ValidateRecord(ctx, rec); err != nil {
		return zero, err
	}

	externalID, err := ExtractExternalID(rec)
	if err != nil {
		tol, ok := policy.(missingIDTolerator)
		if !ok || !tol.TolerateMissingID() {
			return zero, err
		}
		logging.From(ctx).Warn("external record has no identifier, a fresh local identifier will be assigned",
			"record_keys", rec.Keys())
	}

	isUpdate := !isNilEntity(existing)
	target := existing
	if !isUpdate {
		target = policy.NewEntity()
	}

	if err := policy.MapFields(ctx, rec, target, isUpdate); err != nil {
		return zero, err
	}

	stampAudit(target, isUpdate, actor, time.Now())

	if err := policy.PostSync(ctx, rec, target, isUpdate); err != nil {
		return zero, err
	}

	logging.From(ctx).Debug("synchronized entity",
		ExternalIDKey, externalID, "is_update", isUpdate)

	return target, nil
}

// RequiresSynchronization reports whether a full sync is worth performing
// for the given record and stored entity, without mutating either. It maps
// the record onto a throwaway entity and diffs it against the stored one.
// Any failure during the probe resolves to true: failing open toward a
// re-sync is safer than silently going stale.
func RequiresSynchronization[E Entity](ctx context.Context, policy Reconciler[E], rec *model.Record, existing E) bool {
	if rec == nil || isNilEntity(existing) {
		return true
	}

	if err := policy.ValidateRecord(ctx, rec); err != nil {
		logging.From(ctx).Warn("change probe could not validate record, assuming sync is needed",
			"error", err.Error())
		return true
	}

	probe := policy.NewEntity()
	if err := policy.MapFields(ctx, rec, probe, false); err != nil {
		logging.From(ctx).Warn("change probe could not map record, assuming sync is needed",
			"error", err.Error())
		return true
	}

	return policy.DetectChanges(ctx, probe, existing)
}

// stampAudit applies the audit rules: creation metadata is written exactly
// once, modification metadata on every update
func stampAudit[E Entity](target E, isUpdate bool, actor string, now time.Time) {
	if actor == "" {
		actor = DefaultActor
	}
	audit := target.AuditMeta()

	if isUpdate {
		audit.ModifiedAt = now
		audit.ModifiedBy = actor
		return
	}

	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = now
	}
	if audit.CreatedBy == "" {
		audit.CreatedBy = actor
	}
	if !target.HasID() {
		target.AssignNewID()
	}
}

// isNilEntity reports whether the entity interface value holds a nil
// pointer (the create path of Synchronize)
func isNilEntity[E Entity](e E) bool {
	v := reflect.ValueOf(e)
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}
