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

const usersCollection = "users"

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

// userDoc is the Firestore persistence model. The principal name is stored
// lowercased in a dedicated field so lookups stay case-insensitive.
type userDoc struct {
	ID             string    `firestore:"id"`
	ExternalID     string    `firestore:"external_id"`
	FirstName      string    `firestore:"first_name"`
	LastName       string    `firestore:"last_name"`
	PrincipalName  string    `firestore:"principal_name"`
	PrincipalLower string    `firestore:"principal_name_lower"`
	Phone          string    `firestore:"phone"`
	AlternateEmail string    `firestore:"alternate_email"`
	JobTitle       string    `firestore:"job_title"`
	IsActive       bool      `firestore:"is_active"`
	CreatedAt      time.Time `firestore:"created_at"`
	CreatedBy      string    `firestore:"created_by"`
	ModifiedAt     time.Time `firestore:"modified_at"`
	ModifiedBy     string    `firestore:"modified_by"`
}

func (r *userRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + usersCollection)
	}
	return r.client.Collection(usersCollection)
}

func (r *userRepository) toDoc(user *model.User) *userDoc {
	return &userDoc{
		ID:             string(user.ID),
		ExternalID:     user.ExternalID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		PrincipalName:  user.PrincipalName,
		PrincipalLower: strings.ToLower(user.PrincipalName),
		Phone:          user.Phone,
		AlternateEmail: user.AlternateEmail,
		JobTitle:       user.JobTitle,
		IsActive:       user.IsActive,
		CreatedAt:      user.Audit.CreatedAt,
		CreatedBy:      user.Audit.CreatedBy,
		ModifiedAt:     user.Audit.ModifiedAt,
		ModifiedBy:     user.Audit.ModifiedBy,
	}
}

func (r *userRepository) fromDoc(doc *userDoc) *model.User {
	return &model.User{
		ID:             types.UserID(doc.ID),
		ExternalID:     doc.ExternalID,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		PrincipalName:  doc.PrincipalName,
		Phone:          doc.Phone,
		AlternateEmail: doc.AlternateEmail,
		JobTitle:       doc.JobTitle,
		IsActive:       doc.IsActive,
		Audit: model.Audit{
			CreatedAt:  doc.CreatedAt,
			CreatedBy:  doc.CreatedBy,
			ModifiedAt: doc.ModifiedAt,
			ModifiedBy: doc.ModifiedBy,
		},
	}
}

// Get retrieves a single user by ID
func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", id))
	}

	return r.fromDoc(&doc), nil
}

// GetByExternalID retrieves a user by its identifier in the external directory
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return r.queryOne(ctx, "external_id", externalID)
}

// GetByPrincipalName retrieves a user by principal name, case-insensitively
func (r *userRepository) GetByPrincipalName(ctx context.Context, upn string) (*model.User, error) {
	return r.queryOne(ctx, "principal_name_lower", strings.ToLower(upn))
}

func (r *userRepository) queryOne(ctx context.Context, field, value string) (*model.User, error) {
	iter := r.collection().Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found",
			goerr.V(field, value))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user", goerr.V(field, value))
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V(field, value))
	}

	return r.fromDoc(&doc), nil
}

// GetAll retrieves all users
func (r *userRepository) GetAll(ctx context.Context) ([]*model.User, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user")
		}
		users = append(users, r.fromDoc(&doc))
	}

	return users, nil
}

// Put saves a user (upsert operation)
func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is required")
	}

	if _, err := r.collection().Doc(string(user.ID)).Set(ctx, r.toDoc(user)); err != nil {
		return goerr.Wrap(err, "failed to save user", goerr.V("id", user.ID))
	}

	return nil
}
