package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/orgwatch/dirsync/pkg/domain/interfaces"
	"github.com/orgwatch/dirsync/pkg/domain/model"
)

func runSyncMetadataTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("returns zero metadata before any save", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		meta, err := repo.GetSyncMetadata(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, meta.LastSyncSuccess.IsZero()).True()
		gt.Value(t, meta.TeamCount).Equal(0)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().Truncate(time.Millisecond)
		meta := &model.SyncMetadata{
			LastSyncSuccess: now,
			LastSyncAttempt: now,
			TeamCount:       3,
			ChannelCount:    12,
			UserCount:       40,
		}
		gt.NoError(t, repo.SaveSyncMetadata(ctx, meta)).Required()

		got, err := repo.GetSyncMetadata(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, got.LastSyncSuccess.UnixMilli()).Equal(now.UnixMilli())
		gt.Value(t, got.TeamCount).Equal(3)
		gt.Value(t, got.ChannelCount).Equal(12)
		gt.Value(t, got.UserCount).Equal(40)
	})
}

func TestSyncMetadataMemory(t *testing.T) {
	runSyncMetadataTest(t, newMemoryRepo)
}

func TestSyncMetadataFirestore(t *testing.T) {
	runSyncMetadataTest(t, newFirestoreRepo)
}
