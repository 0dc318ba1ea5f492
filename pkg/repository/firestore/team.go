package firestore

import (
	"context"
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

const teamsCollection = "teams"

type teamRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.TeamRepository = &teamRepository{}

func newTeamRepository(client *firestore.Client) *teamRepository {
	return &teamRepository{client: client}
}

// teamDoc is the Firestore persistence model
type teamDoc struct {
	ID          string    `firestore:"id"`
	ExternalID  string    `firestore:"external_id"`
	DisplayName string    `firestore:"display_name"`
	Description string    `firestore:"description"`
	Visibility  string    `firestore:"visibility"`
	Status      string    `firestore:"status"`
	OwnerUPN    string    `firestore:"owner_upn"`
	IsActive    bool      `firestore:"is_active"`
	CreatedAt   time.Time `firestore:"created_at"`
	CreatedBy   string    `firestore:"created_by"`
	ModifiedAt  time.Time `firestore:"modified_at"`
	ModifiedBy  string    `firestore:"modified_by"`
}

func (r *teamRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + teamsCollection)
	}
	return r.client.Collection(teamsCollection)
}

func (r *teamRepository) toDoc(team *model.Team) *teamDoc {
	return &teamDoc{
		ID:          string(team.ID),
		ExternalID:  team.ExternalID,
		DisplayName: team.DisplayName,
		Description: team.Description,
		Visibility:  team.Visibility.String(),
		Status:      team.Status.String(),
		OwnerUPN:    team.OwnerUPN,
		IsActive:    team.IsActive,
		CreatedAt:   team.Audit.CreatedAt,
		CreatedBy:   team.Audit.CreatedBy,
		ModifiedAt:  team.Audit.ModifiedAt,
		ModifiedBy:  team.Audit.ModifiedBy,
	}
}

func (r *teamRepository) fromDoc(doc *teamDoc) *model.Team {
	return &model.Team{
		ID:          types.TeamID(doc.ID),
		ExternalID:  doc.ExternalID,
		DisplayName: doc.DisplayName,
		Description: doc.Description,
		Visibility:  types.TeamVisibility(doc.Visibility),
		Status:      types.LifecycleStatus(doc.Status).Normalize(),
		OwnerUPN:    doc.OwnerUPN,
		IsActive:    doc.IsActive,
		Audit: model.Audit{
			CreatedAt:  doc.CreatedAt,
			CreatedBy:  doc.CreatedBy,
			ModifiedAt: doc.ModifiedAt,
			ModifiedBy: doc.ModifiedBy,
		},
	}
}

// Get retrieves a single team by ID
func (r *teamRepository) Get(ctx context.Context, id types.TeamID) (*model.Team, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get team", goerr.V("id", id))
	}

	var doc teamDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode team", goerr.V("id", id))
	}

	return r.fromDoc(&doc), nil
}

// GetByExternalID retrieves a team by its identifier in the external directory
func (r *teamRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Team, error) {
	iter := r.collection().Where("external_id", "==", externalID).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found",
			goerr.V("external_id", externalID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query team", goerr.V("external_id", externalID))
	}

	var doc teamDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode team", goerr.V("external_id", externalID))
	}

	return r.fromDoc(&doc), nil
}

// GetAll retrieves all teams
func (r *teamRepository) GetAll(ctx context.Context) ([]*model.Team, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	var teams []*model.Team
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate teams")
		}

		var doc teamDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode team")
		}
		teams = append(teams, r.fromDoc(&doc))
	}

	return teams, nil
}

// Put saves a team (upsert operation)
func (r *teamRepository) Put(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		return goerr.New("team ID is required")
	}

	if _, err := r.collection().Doc(string(team.ID)).Set(ctx, r.toDoc(team)); err != nil {
		return goerr.Wrap(err, "failed to save team", goerr.V("id", team.ID))
	}

	return nil
}
