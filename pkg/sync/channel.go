package sync

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// defaultGeneralAliases are the display names that mark the default/primary
// channel of a team across workspace locales
var defaultGeneralAliases = []string{"General", "Général", "Allgemein", "Generale", "Generelt", "一般"}

// ChannelReconciler is the reconciliation policy for team channels
type ChannelReconciler struct {
	generalAliases []string
}

var _ Reconciler[*model.Channel] = &ChannelReconciler{}

// ChannelOption configures a ChannelReconciler
type ChannelOption func(*ChannelReconciler)

// WithGeneralAliases replaces the display names recognized as the general
// channel of a team
func WithGeneralAliases(aliases ...string) ChannelOption {
	return func(r *ChannelReconciler) {
		r.generalAliases = aliases
	}
}

// NewChannelReconciler creates a new channel reconciliation policy
func NewChannelReconciler(opts ...ChannelOption) *ChannelReconciler {
	r := &ChannelReconciler{
		generalAliases: defaultGeneralAliases,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewEntity returns a fresh active channel
func (r *ChannelReconciler) NewEntity() *model.Channel {
	return &model.Channel{IsActive: true}
}

// TolerateMissingID reports that a channel record without an identifier is
// not fatal: a fresh local identifier is generated downstream instead.
// Team and user records treat the same condition as an error.
func (r *ChannelReconciler) TolerateMissingID() bool {
	return true
}

// ValidateRecord requires a non-empty display name
func (r *ChannelReconciler) ValidateRecord(ctx context.Context, rec *model.Record) error {
	name := ExtractString(ctx, rec, "DisplayName", "")
	if strings.TrimSpace(name) == "" {
		return goerr.Wrap(ErrMissingRequiredField, "channel display name is required",
			goerr.V(FieldKey, "DisplayName"))
	}
	return nil
}

// MapFields copies channel properties from the record onto the target
func (r *ChannelReconciler) MapFields(ctx context.Context, rec *model.Record, ch *model.Channel, isUpdate bool) error {
	ch.DisplayName = ExtractString(ctx, rec, "DisplayName", ch.DisplayName)
	ch.Description = ExtractString(ctx, rec, "Description", ch.Description)

	rawMembership := ExtractString(ctx, rec, "MembershipType", types.MembershipStandard.String())
	membership, err := types.ParseMembershipType(rawMembership)
	if err != nil {
		logging.From(ctx).Warn("unrecognized channel membership type",
			"value", rawMembership)
		membership = types.MembershipUnknown
	}
	ch.MembershipType = membership
	ch.IsPrivate = strings.EqualFold(strings.TrimSpace(rawMembership), "private")

	ch.WebURL = ExtractString(ctx, rec, "WebUrl", ch.WebURL)

	// Negative counters from the directory are noise; clamp to zero
	ch.FilesCount = clampCounter(ExtractInt64(ctx, rec, "FilesCount", ch.FilesCount))
	ch.FilesSize = clampCounter(ExtractInt64(ctx, rec, "FilesSize", ch.FilesSize))
	ch.MessagesCount = clampCounter(ExtractInt64(ctx, rec, "MessagesCount", ch.MessagesCount))

	if ts := ExtractTime(ctx, rec, "LastActivityAt"); ts != nil {
		ch.LastActivityAt = ts
	}
	if ts := ExtractTime(ctx, rec, "LastMessageAt"); ts != nil {
		ch.LastMessageAt = ts
	}

	ch.NotificationsEnabled = ExtractBool(ctx, rec, "NotificationsEnabled", ch.NotificationsEnabled)
	ch.IsModerated = ExtractBool(ctx, rec, "IsModerated", ch.IsModerated)
	ch.Category = ExtractString(ctx, rec, "Category", ch.Category)
	ch.SortOrder = ExtractInt(ctx, rec, "SortOrder", ch.SortOrder)

	if raw := ExtractSlice(ctx, rec, "Tags"); raw != nil {
		tags := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				tags = append(tags, strings.TrimSpace(s))
			}
		}
		ch.Tags = tags
	}

	favorite := ExtractBool(ctx, rec, "IsFavoriteByDefault", false)
	ch.IsGeneral = favorite || r.isGeneralName(ch.DisplayName)
	if ch.IsGeneral && ch.MembershipType != types.MembershipStandard {
		// A general channel always carries standard membership, whatever
		// the directory reports
		ch.MembershipType = types.MembershipStandard
	}

	// Active is the resting state. Archival of a channel is driven by an
	// explicit administrative action, never by field mapping.
	if !isUpdate || ch.Status != types.StatusActive {
		ch.Status = types.StatusActive
	}

	return nil
}

// DetectChanges compares text fields normalized and counters exactly
func (r *ChannelReconciler) DetectChanges(ctx context.Context, mapped, existing *model.Channel) bool {
	return StringChanged(mapped.DisplayName, existing.DisplayName) ||
		StringChanged(mapped.Description, existing.Description) ||
		mapped.MembershipType != existing.MembershipType ||
		mapped.IsPrivate != existing.IsPrivate ||
		mapped.IsGeneral != existing.IsGeneral ||
		mapped.MessagesCount != existing.MessagesCount ||
		mapped.FilesCount != existing.FilesCount ||
		mapped.FilesSize != existing.FilesSize
}

// PostSync is reserved for cascading sync of channel members
func (r *ChannelReconciler) PostSync(ctx context.Context, rec *model.Record, ch *model.Channel, isUpdate bool) error {
	return nil
}

func (r *ChannelReconciler) isGeneralName(name string) bool {
	for _, alias := range r.generalAliases {
		if strings.EqualFold(strings.TrimSpace(name), alias) {
			return true
		}
	}
	return false
}

func clampCounter(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
