package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
)

type teamRepository struct {
	mu    sync.RWMutex
	teams map[types.TeamID]*model.Team
}

var _ interfaces.TeamRepository = &teamRepository{}

func newTeamRepository() *teamRepository {
	return &teamRepository{
		teams: make(map[types.TeamID]*model.Team),
	}
}

// Get retrieves a single team by ID
func (r *teamRepository) Get(ctx context.Context, id types.TeamID) (*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found", goerr.V("id", id))
	}

	teamCopy := *team
	return &teamCopy, nil
}

// GetByExternalID retrieves a team by its identifier in the external directory
func (r *teamRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.teams {
		if team.ExternalID == externalID {
			teamCopy := *team
			return &teamCopy, nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found",
		goerr.V("external_id", externalID))
}

// GetAll retrieves all teams
func (r *teamRepository) GetAll(ctx context.Context) ([]*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]*model.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teamCopy := *team
		teams = append(teams, &teamCopy)
	}

	return teams, nil
}

// Put saves a team (upsert operation)
func (r *teamRepository) Put(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		return goerr.New("team ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	teamCopy := *team
	r.teams[team.ID] = &teamCopy
	return nil
}
