package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	syncMetadataCollection = "sync_metadata"
	syncStatusDocument     = "sync_status"
)

// Firestore is the Cloud Firestore-backed repository
type Firestore struct {
	client  *firestore.Client
	channel *channelRepository
	team    *teamRepository
	user    *userRepository

	collectionPrefix string
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
		f.channel.collectionPrefix = prefix
		f.team.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID), goerr.V("database_id", databaseID))
	}

	f := &Firestore{
		client:  client,
		channel: newChannelRepository(client),
		team:    newTeamRepository(client),
		user:    newUserRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Channel() interfaces.ChannelRepository {
	return f.channel
}

func (f *Firestore) Team() interfaces.TeamRepository {
	return f.team
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) metadataDoc() *firestore.DocumentRef {
	name := syncMetadataCollection
	if f.collectionPrefix != "" {
		name = f.collectionPrefix + "_" + name
	}
	return f.client.Collection(name).Doc(syncStatusDocument)
}

// GetSyncMetadata retrieves sync health metadata. A missing document yields
// zero-valued metadata, not an error.
func (f *Firestore) GetSyncMetadata(ctx context.Context) (*model.SyncMetadata, error) {
	snap, err := f.metadataDoc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.SyncMetadata{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get sync metadata")
	}

	var metadata model.SyncMetadata
	if err := snap.DataTo(&metadata); err != nil {
		return nil, goerr.Wrap(err, "failed to decode sync metadata")
	}

	return &metadata, nil
}

// SaveSyncMetadata stores sync health metadata
func (f *Firestore) SaveSyncMetadata(ctx context.Context, metadata *model.SyncMetadata) error {
	if _, err := f.metadataDoc().Set(ctx, metadata); err != nil {
		return goerr.Wrap(err, "failed to save sync metadata")
	}
	return nil
}
