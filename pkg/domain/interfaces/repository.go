package interfaces

import (
	"context"

	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Channel() ChannelRepository
	Team() TeamRepository
	User() UserRepository

	// Sync metadata
	GetSyncMetadata(ctx context.Context) (*model.SyncMetadata, error)
	SaveSyncMetadata(ctx context.Context, metadata *model.SyncMetadata) error

	Close() error
}

// ChannelRepository persists Channel entities
type ChannelRepository interface {
	Get(ctx context.Context, id types.ChannelID) (*model.Channel, error)
	ListByTeam(ctx context.Context, teamID types.TeamID) ([]*model.Channel, error)
	// FindByDisplayName locates a channel of a team by its display name.
	// Channels carry no external identifier, so the orchestrator matches
	// them by name within their team.
	FindByDisplayName(ctx context.Context, teamID types.TeamID, name string) (*model.Channel, error)
	Put(ctx context.Context, channel *model.Channel) error
}

// TeamRepository persists Team entities
type TeamRepository interface {
	Get(ctx context.Context, id types.TeamID) (*model.Team, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Team, error)
	GetAll(ctx context.Context) ([]*model.Team, error)
	Put(ctx context.Context, team *model.Team) error
}

// UserRepository persists User entities
type UserRepository interface {
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetByPrincipalName(ctx context.Context, upn string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Put(ctx context.Context, user *model.User) error
}
