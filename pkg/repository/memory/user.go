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

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
	}
}

// Get retrieves a single user by ID
func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
	}

	userCopy := *user
	return &userCopy, nil
}

// GetByExternalID retrieves a user by its identifier in the external directory
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ExternalID == externalID {
			userCopy := *user
			return &userCopy, nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found",
		goerr.V("external_id", externalID))
}

// GetByPrincipalName retrieves a user by principal name, case-insensitively
func (r *userRepository) GetByPrincipalName(ctx context.Context, upn string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.PrincipalName, upn) {
			userCopy := *user
			return &userCopy, nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found",
		goerr.V("principal_name", upn))
}

// GetAll retrieves all users
func (r *userRepository) GetAll(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		users = append(users, &userCopy)
	}

	return users, nil
}

// Put saves a user (upsert operation)
func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}
