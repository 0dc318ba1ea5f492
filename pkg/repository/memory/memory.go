package memory

import (
	"context"
	"sync"

	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	channel *channelRepository
	team    *teamRepository
	user    *userRepository

	metaMu   sync.RWMutex
	metadata *model.SyncMetadata
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		channel:  newChannelRepository(),
		team:     newTeamRepository(),
		user:     newUserRepository(),
		metadata: &model.SyncMetadata{},
	}
}

func (m *Memory) Channel() interfaces.ChannelRepository {
	return m.channel
}

func (m *Memory) Team() interfaces.TeamRepository {
	return m.team
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

// GetSyncMetadata retrieves sync health metadata
func (m *Memory) GetSyncMetadata(ctx context.Context) (*model.SyncMetadata, error) {
	m.metaMu.RLock()
	defer m.metaMu.RUnlock()

	metaCopy := *m.metadata
	return &metaCopy, nil
}

// SaveSyncMetadata stores sync health metadata
func (m *Memory) SaveSyncMetadata(ctx context.Context, metadata *model.SyncMetadata) error {
	m.metaMu.Lock()
	defer m.metaMu.Unlock()

	metaCopy := *metadata
	m.metadata = &metaCopy
	return nil
}

func (m *Memory) Close() error {
	return nil
}
