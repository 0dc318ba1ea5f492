package repository_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
	"github.com/orgwatch/dirsync/pkg/domain/types"
)

func newChannelFixture(teamID types.TeamID) *model.Channel {
	now := time.Now().Truncate(time.Millisecond)
	return &model.Channel{
		ID:             types.NewChannelID(),
		TeamID:         teamID,
		DisplayName:    fmt.Sprintf("channel-%d", now.UnixNano()),
		Description:    "fixture channel",
		MembershipType: types.MembershipStandard,
		MessagesCount:  10,
		FilesCount:     3,
		FilesSize:      4096,
		LastActivityAt: &now,
		Tags:           []string{"ops", "infra"},
		Status:         types.StatusActive,
		IsActive:       true,
	}
}

func runChannelRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ch := newChannelFixture(types.NewTeamID())

		gt.NoError(t, repo.Channel().Put(ctx, ch)).Required()

		got, err := repo.Channel().Get(ctx, ch.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.TeamID).Equal(ch.TeamID)
		gt.Value(t, got.DisplayName).Equal(ch.DisplayName)
		gt.Value(t, got.MembershipType).Equal(types.MembershipStandard)
		gt.Value(t, got.MessagesCount).Equal(int64(10))
		gt.Value(t, got.FilesSize).Equal(int64(4096))
		gt.Value(t, got.Tags).Equal([]string{"ops", "infra"})
		gt.Value(t, got.LastActivityAt.UnixMilli()).Equal(ch.LastActivityAt.UnixMilli())
	})

	t.Run("ListByTeam scopes to the team", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		teamID := types.NewTeamID()
		otherTeamID := types.NewTeamID()
		mine := newChannelFixture(teamID)
		other := newChannelFixture(otherTeamID)
		gt.NoError(t, repo.Channel().Put(ctx, mine)).Required()
		gt.NoError(t, repo.Channel().Put(ctx, other)).Required()

		channels, err := repo.Channel().ListByTeam(ctx, teamID)
		gt.NoError(t, err).Required()
		gt.Value(t, len(channels)).Equal(1)
		gt.Value(t, channels[0].ID).Equal(mine.ID)
	})

	t.Run("FindByDisplayName is case-insensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		teamID := types.NewTeamID()
		ch := newChannelFixture(teamID)
		gt.NoError(t, repo.Channel().Put(ctx, ch)).Required()

		got, err := repo.Channel().FindByDisplayName(ctx, teamID, strings.ToUpper(ch.DisplayName))
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(ch.ID)

		// Same name under another team must not match
		_, err = repo.Channel().FindByDisplayName(ctx, types.NewTeamID(), ch.DisplayName)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("missing channel yields ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Channel().Get(ctx, types.NewChannelID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Put rejects channel without ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ch := newChannelFixture(types.NewTeamID())
		ch.ID = ""

		gt.Error(t, repo.Channel().Put(ctx, ch))
	})

	t.Run("returned channel is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ch := newChannelFixture(types.NewTeamID())

		gt.NoError(t, repo.Channel().Put(ctx, ch)).Required()

		first, err := repo.Channel().Get(ctx, ch.ID)
		gt.NoError(t, err).Required()
		first.Tags[0] = "mutated"
		first.Description = "mutated"

		second, err := repo.Channel().Get(ctx, ch.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Tags[0]).Equal("ops")
		gt.Value(t, second.Description).Equal("fixture channel")
	})
}

func TestChannelRepositoryMemory(t *testing.T) {
	runChannelRepositoryTest(t, newMemoryRepo)
}

func TestChannelRepositoryFirestore(t *testing.T) {
	runChannelRepositoryTest(t, newFirestoreRepo)
}
