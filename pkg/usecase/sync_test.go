package usecase_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/repository/memory"
	"github.com/orgwatch/dirsync/pkg/usecase"
)

// mockDirectory serves canned records like the directory REST API would
type mockDirectory struct {
	teams    []*model.Record
	channels map[string][]*model.Record
	users    []*model.Record

	listTeamsErr error
	listUsersErr error
}

func yieldAll(recs []*model.Record, err error) iter.Seq2[*model.Record, error] {
	return func(yield func(*model.Record, error) bool) {
		if err != nil {
			yield(nil, err)
			return
		}
		for _, rec := range recs {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (m *mockDirectory) GetTeam(ctx context.Context, externalID string) (*model.Record, error) {
	for _, rec := range m.teams {
		if v, _ := rec.Get("Id"); v == externalID {
			return rec, nil
		}
	}
	return nil, goerr.New("no such team")
}

func (m *mockDirectory) ListTeams(ctx context.Context) iter.Seq2[*model.Record, error] {
	return yieldAll(m.teams, m.listTeamsErr)
}

func (m *mockDirectory) ListChannels(ctx context.Context, teamExternalID string) iter.Seq2[*model.Record, error] {
	return yieldAll(m.channels[teamExternalID], nil)
}

func (m *mockDirectory) GetChannel(ctx context.Context, teamExternalID, channelExternalID string) (*model.Record, error) {
	for _, rec := range m.channels[teamExternalID] {
		if v, _ := rec.Get("Id"); v == channelExternalID {
			return rec, nil
		}
	}
	return nil, goerr.New("no such channel")
}

func (m *mockDirectory) GetUser(ctx context.Context, externalID string) (*model.Record, error) {
	for _, rec := range m.users {
		if v, _ := rec.Get("Id"); v == externalID {
			return rec, nil
		}
	}
	return nil, goerr.New("no such user")
}

func (m *mockDirectory) ListUsers(ctx context.Context) iter.Seq2[*model.Record, error] {
	return yieldAll(m.users, m.listUsersErr)
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		teams: []*model.Record{
			model.RecordFrom(map[string]any{
				"Id":          "team-eng",
				"DisplayName": "Engineering",
				"Description": "builds things",
				"Visibility":  "Public",
			}),
			model.RecordFrom(map[string]any{
				"Id":          "team-sec",
				"DisplayName": "Security",
				"Visibility":  "Private",
			}),
		},
		channels: map[string][]*model.Record{
			"team-eng": {
				model.RecordFrom(map[string]any{
					"Id":             "ch-general",
					"DisplayName":    "General",
					"MembershipType": "Standard",
					"MessagesCount":  int64(12),
				}),
				model.RecordFrom(map[string]any{
					"DisplayName":    "incidents",
					"MembershipType": "Private",
				}),
			},
			"team-sec": {
				model.RecordFrom(map[string]any{
					"Id":          "ch-sec-general",
					"DisplayName": "General",
				}),
			},
		},
		users: []*model.Record{
			model.RecordFrom(map[string]any{
				"Id":                "user-1",
				"UserPrincipalName": "alice@example.com",
				"GivenName":         "Alice",
				"Surname":           "Smith",
			}),
			model.RecordFrom(map[string]any{
				"Id":                "user-2",
				"UserPrincipalName": "bob@example.com",
				"GivenName":         "Bob",
			}),
		},
	}
}

func TestSyncAll(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	uc := usecase.New(repo, dir)

	report, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()

	gt.Value(t, report.Teams.Created).Equal(2)
	gt.Value(t, report.Channels.Created).Equal(3)
	gt.Value(t, report.Users.Created).Equal(2)
	gt.Value(t, report.Teams.Failed).Equal(0)

	teams, err := repo.Team().GetAll(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, len(teams)).Equal(2)

	// The channel without a directory identifier still got a local ID
	for _, team := range teams {
		channels, err := repo.Channel().ListByTeam(ctx, team.ID)
		gt.NoError(t, err).Required()
		for _, ch := range channels {
			gt.Bool(t, ch.HasID()).True()
			gt.Value(t, ch.TeamID).Equal(team.ID)
		}
	}

	meta, err := repo.GetSyncMetadata(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, meta.LastSyncSuccess.IsZero()).False()
	gt.Value(t, meta.TeamCount).Equal(2)
	gt.Value(t, meta.ChannelCount).Equal(3)
	gt.Value(t, meta.UserCount).Equal(2)
}

func TestSyncAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	uc := usecase.New(repo, dir)

	_, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()

	before, err := repo.User().GetByExternalID(ctx, "user-1")
	gt.NoError(t, err).Required()

	report, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()

	gt.Value(t, report.Teams.Unchanged).Equal(2)
	gt.Value(t, report.Channels.Unchanged).Equal(3)
	gt.Value(t, report.Users.Unchanged).Equal(2)
	gt.Value(t, report.Teams.Created).Equal(0)

	// Unchanged entities are not rewritten, so audit stamps stay put
	after, err := repo.User().GetByExternalID(ctx, "user-1")
	gt.NoError(t, err).Required()
	gt.Value(t, after.Audit.ModifiedAt).Equal(before.Audit.ModifiedAt)
}

func TestSyncAllPicksUpRemoteChange(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	uc := usecase.New(repo, dir)

	_, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()

	dir.users[0] = model.RecordFrom(map[string]any{
		"Id":                "user-1",
		"UserPrincipalName": "alice@example.com",
		"GivenName":         "Alice",
		"Surname":           "Jones",
	})

	report, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, report.Users.Updated).Equal(1)
	gt.Value(t, report.Users.Unchanged).Equal(1)

	user, err := repo.User().GetByExternalID(ctx, "user-1")
	gt.NoError(t, err).Required()
	gt.Value(t, user.LastName).Equal("Jones")
}

func TestSyncAllListingFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	dir.listUsersErr = goerr.New("directory unavailable")
	uc := usecase.New(repo, dir)

	_, err := uc.SyncAll(ctx)
	gt.Error(t, err)

	// The attempt is recorded but the run is not marked successful
	meta, err := repo.GetSyncMetadata(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, meta.LastSyncAttempt.IsZero()).False()
	gt.Bool(t, meta.LastSyncSuccess.IsZero()).True()
}

func TestSyncAllToleratesBadRecord(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	// A user record without an identifier cannot be synced
	dir.users = append(dir.users, model.RecordFrom(map[string]any{
		"UserPrincipalName": "ghost@example.com",
	}))
	uc := usecase.New(repo, dir)

	report, err := uc.SyncAll(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, report.Users.Created).Equal(2)
	gt.Value(t, report.Users.Failed).Equal(1)
}

func TestSyncTeamChannels(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dir := newMockDirectory()
	uc := usecase.New(repo, dir)

	report, err := uc.SyncTeamChannels(ctx, "team-eng")
	gt.NoError(t, err).Required()
	gt.Value(t, report.Teams.Created).Equal(1)
	gt.Value(t, report.Channels.Created).Equal(2)

	// The other team was not touched
	teams, err := repo.Team().GetAll(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, len(teams)).Equal(1)
}

func TestSyncTeamChannelsUnknownTeam(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), newMockDirectory())

	_, err := uc.SyncTeamChannels(ctx, "team-nope")
	gt.Bool(t, errors.Is(err, usecase.ErrTeamNotFound)).True()
}

func TestSyncUser(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, newMockDirectory(), usecase.WithActor("operator"))

	rec := model.RecordFrom(map[string]any{
		"Id":                "user-7",
		"UserPrincipalName": "carol@example.com",
		"GivenName":         "Carol",
	})

	user, err := uc.SyncUser(ctx, rec)
	gt.NoError(t, err).Required()
	gt.Value(t, user.Audit.CreatedBy).Equal("operator")

	stored, err := repo.User().GetByExternalID(ctx, "user-7")
	gt.NoError(t, err).Required()
	gt.Value(t, stored.FirstName).Equal("Carol")
}

func TestSyncUserByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, newMockDirectory())

	user, err := uc.SyncUserByID(ctx, "user-1")
	gt.NoError(t, err).Required()
	gt.Value(t, user.PrincipalName).Equal("alice@example.com")

	stored, err := repo.User().GetByExternalID(ctx, "user-1")
	gt.NoError(t, err).Required()
	gt.Value(t, stored.LastName).Equal("Smith")

	_, err = uc.SyncUserByID(ctx, "user-unknown")
	gt.Error(t, err)
}
