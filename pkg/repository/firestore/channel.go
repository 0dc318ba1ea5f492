package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const channelsCollection = "channels"

type channelRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ChannelRepository = &channelRepository{}

func newChannelRepository(client *firestore.Client) *channelRepository {
	return &channelRepository{client: client}
}

// channelDoc is the Firestore persistence model. The display name is also
// stored lowercased so the by-name lookup stays case-insensitive.
type channelDoc struct {
	ID               string     `firestore:"id"`
	TeamID           string     `firestore:"team_id"`
	DisplayName      string     `firestore:"display_name"`
	DisplayNameLower string     `firestore:"display_name_lower"`
	Description      string     `firestore:"description"`
	MembershipType   string     `firestore:"membership_type"`
	WebURL           string     `firestore:"web_url"`
	FilesCount       int64      `firestore:"files_count"`
	FilesSize        int64      `firestore:"files_size"`
	MessagesCount    int64      `firestore:"messages_count"`
	LastActivityAt   *time.Time `firestore:"last_activity_at"`
	LastMessageAt    *time.Time `firestore:"last_message_at"`
	Notifications    bool       `firestore:"notifications_enabled"`
	IsModerated      bool       `firestore:"is_moderated"`
	Category         string     `firestore:"category"`
	Tags             []string   `firestore:"tags"`
	SortOrder        int        `firestore:"sort_order"`
	IsPrivate        bool       `firestore:"is_private"`
	IsGeneral        bool       `firestore:"is_general"`
	Status           string     `firestore:"status"`
	IsActive         bool       `firestore:"is_active"`
	CreatedAt        time.Time  `firestore:"created_at"`
	CreatedBy        string     `firestore:"created_by"`
	ModifiedAt       time.Time  `firestore:"modified_at"`
	ModifiedBy       string     `firestore:"modified_by"`
}

func (r *channelRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + channelsCollection)
	}
	return r.client.Collection(channelsCollection)
}

func (r *channelRepository) toDoc(ch *model.Channel) *channelDoc {
	return &channelDoc{
		ID:               string(ch.ID),
		TeamID:           string(ch.TeamID),
		DisplayName:      ch.DisplayName,
		DisplayNameLower: strings.ToLower(ch.DisplayName),
		Description:      ch.Description,
		MembershipType:   ch.MembershipType.String(),
		WebURL:           ch.WebURL,
		FilesCount:       ch.FilesCount,
		FilesSize:        ch.FilesSize,
		MessagesCount:    ch.MessagesCount,
		LastActivityAt:   ch.LastActivityAt,
		LastMessageAt:    ch.LastMessageAt,
		Notifications:    ch.NotificationsEnabled,
		IsModerated:      ch.IsModerated,
		Category:         ch.Category,
		Tags:             ch.Tags,
		SortOrder:        ch.SortOrder,
		IsPrivate:        ch.IsPrivate,
		IsGeneral:        ch.IsGeneral,
		Status:           ch.Status.String(),
		IsActive:         ch.IsActive,
		CreatedAt:        ch.Audit.CreatedAt,
		CreatedBy:        ch.Audit.CreatedBy,
		ModifiedAt:       ch.Audit.ModifiedAt,
		ModifiedBy:       ch.Audit.ModifiedBy,
	}
}

func (r *channelRepository) fromDoc(doc *channelDoc) *model.Channel {
	return &model.Channel{
		ID:                   types.ChannelID(doc.ID),
		TeamID:               types.TeamID(doc.TeamID),
		DisplayName:          doc.DisplayName,
		Description:          doc.Description,
		MembershipType:       types.MembershipType(doc.MembershipType),
		WebURL:               doc.WebURL,
		FilesCount:           doc.FilesCount,
		FilesSize:            doc.FilesSize,
		MessagesCount:        doc.MessagesCount,
		LastActivityAt:       doc.LastActivityAt,
		LastMessageAt:        doc.LastMessageAt,
		NotificationsEnabled: doc.Notifications,
		IsModerated:          doc.IsModerated,
		Category:             doc.Category,
		Tags:                 doc.Tags,
		SortOrder:            doc.SortOrder,
		IsPrivate:            doc.IsPrivate,
		IsGeneral:            doc.IsGeneral,
		Status:               types.LifecycleStatus(doc.Status).Normalize(),
		IsActive:             doc.IsActive,
		Audit: model.Audit{
			CreatedAt:  doc.CreatedAt,
			CreatedBy:  doc.CreatedBy,
			ModifiedAt: doc.ModifiedAt,
			ModifiedBy: doc.ModifiedBy,
		},
	}
}

// Get retrieves a single channel by ID
func (r *channelRepository) Get(ctx context.Context, id types.ChannelID) (*model.Channel, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "channel not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get channel", goerr.V("id", id))
	}

	var doc channelDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode channel", goerr.V("id", id))
	}

	return r.fromDoc(&doc), nil
}

// ListByTeam retrieves all channels belonging to a team
func (r *channelRepository) ListByTeam(ctx context.Context, teamID types.TeamID) ([]*model.Channel, error) {
	iter := r.collection().Where("team_id", "==", string(teamID)).Documents(ctx)
	defer iter.Stop()

	var channels []*model.Channel
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate channels", goerr.V("team_id", teamID))
		}

		var doc channelDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode channel", goerr.V("team_id", teamID))
		}
		channels = append(channels, r.fromDoc(&doc))
	}

	return channels, nil
}

// FindByDisplayName locates a channel of a team by display name,
// case-insensitively
func (r *channelRepository) FindByDisplayName(ctx context.Context, teamID types.TeamID, name string) (*model.Channel, error) {
	iter := r.collection().
		Where("team_id", "==", string(teamID)).
		Where("display_name_lower", "==", strings.ToLower(name)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "channel not found",
			goerr.V("team_id", teamID), goerr.V("display_name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query channel", goerr.V("team_id", teamID))
	}

	var doc channelDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode channel", goerr.V("team_id", teamID))
	}

	return r.fromDoc(&doc), nil
}

// Put saves a channel (upsert operation)
func (r *channelRepository) Put(ctx context.Context, channel *model.Channel) error {
	if channel.ID == "" {
		return goerr.New("channel ID is required")
	}

	if _, err := r.collection().Doc(string(channel.ID)).Set(ctx, r.toDoc(channel)); err != nil {
		return goerr.Wrap(err, "failed to save channel", goerr.V("id", channel.ID))
	}

	return nil
}
