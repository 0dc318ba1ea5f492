package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
)

type channelRepository struct {
	mu       sync.RWMutex
	channels map[types.ChannelID]*model.Channel
}

var _ interfaces.ChannelRepository = &channelRepository{}

func newChannelRepository() *channelRepository {
	return &channelRepository{
		channels: make(map[types.ChannelID]*model.Channel),
	}
}

// Get retrieves a single channel by ID
func (r *channelRepository) Get(ctx context.Context, id types.ChannelID) (*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channel, ok := r.channels[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "channel not found", goerr.V("id", id))
	}

	return copyChannel(channel), nil
}

// ListByTeam retrieves all channels belonging to a team
func (r *channelRepository) ListByTeam(ctx context.Context, teamID types.TeamID) ([]*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var channels []*model.Channel
	for _, channel := range r.channels {
		if channel.TeamID == teamID {
			channels = append(channels, copyChannel(channel))
		}
	}

	return channels, nil
}

// FindByDisplayName locates a channel of a team by display name,
// case-insensitively
func (r *channelRepository) FindByDisplayName(ctx context.Context, teamID types.TeamID, name string) (*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, channel := range r.channels {
		if channel.TeamID == teamID && strings.EqualFold(channel.DisplayName, name) {
			return copyChannel(channel), nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "channel not found",
		goerr.V("team_id", teamID), goerr.V("display_name", name))
}

// Put saves a channel (upsert operation)
func (r *channelRepository) Put(ctx context.Context, channel *model.Channel) error {
	if channel.ID == "" {
		return goerr.New("channel ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels[channel.ID] = copyChannel(channel)
	return nil
}

// copyChannel returns a deep copy to prevent external modifications
func copyChannel(c *model.Channel) *model.Channel {
	channelCopy := *c
	if c.Tags != nil {
		channelCopy.Tags = make([]string, len(c.Tags))
		copy(channelCopy.Tags, c.Tags)
	}
	if c.LastActivityAt != nil {
		ts := *c.LastActivityAt
		channelCopy.LastActivityAt = &ts
	}
	if c.LastMessageAt != nil {
		ts := *c.LastMessageAt
		channelCopy.LastMessageAt = &ts
	}
	return &channelCopy
}
