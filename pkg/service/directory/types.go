package directory

import (
	"context"
	"iter"

	"github.com/orgwatch/dirsync/pkg/domain/model"
)

// Service provides access to the external directory. All listing
// operations page through the full result set transparently and yield
// raw records; interpreting the fields is left to the sync policies.
type Service interface {
	GetTeam(ctx context.Context, externalID string) (*model.Record, error)
	ListTeams(ctx context.Context) iter.Seq2[*model.Record, error]
	GetChannel(ctx context.Context, teamExternalID, channelExternalID string) (*model.Record, error)
	ListChannels(ctx context.Context, teamExternalID string) iter.Seq2[*model.Record, error]
	GetUser(ctx context.Context, externalID string) (*model.Record, error)
	ListUsers(ctx context.Context) iter.Seq2[*model.Record, error]
}
