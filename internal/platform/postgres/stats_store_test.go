package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/postgres"
	"github.com/cardstack/cardstack-api/internal/store"
	"github.com/cardstack/cardstack-api/internal/testutils"
)

func TestPostgresStatsStore(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("Get on an unreviewed card reports not found", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)

			statsStore := postgres.NewPostgresStatsStore(tx, nil)
			_, err := statsStore.Get(ctx, user.ID, uuid.New())
			assert.ErrorIs(t, err, store.ErrStatsNotFound)
		})
	})

	t.Run("Upsert inserts then replaces", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Review")
			card := testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, "front", "back")

			stats, err := domain.NewCardReviewStats(user.ID, card.ID)
			require.NoError(t, err)

			statsStore := postgres.NewPostgresStatsStore(tx, nil)
			require.NoError(t, statsStore.Upsert(ctx, stats))

			stored, err := statsStore.Get(ctx, user.ID, card.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, stored.Interval)
			assert.InDelta(t, 2.5, stored.EaseFactor, 0.0001)
			assert.True(t, stored.LastReviewedAt.IsZero())

			now := time.Now().UTC()
			stats.Interval = 3
			stats.EaseFactor = 2.35
			stats.ConsecutiveCorrect = 2
			stats.ReviewCount = 2
			stats.LastReviewedAt = now
			stats.NextReviewAt = now.AddDate(0, 0, 3)
			stats.UpdatedAt = now
			require.NoError(t, statsStore.Upsert(ctx, stats))

			stored, err = statsStore.Get(ctx, user.ID, card.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, stored.Interval)
			assert.InDelta(t, 2.35, stored.EaseFactor, 0.0001)
			assert.Equal(t, 2, stored.ConsecutiveCorrect)
			assert.Equal(t, 2, stored.ReviewCount)
			assert.WithinDuration(t, now, stored.LastReviewedAt, time.Second)
		})
	})

	t.Run("Upsert rejects a missing card", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)

			stats, err := domain.NewCardReviewStats(user.ID, uuid.New())
			require.NoError(t, err)

			statsStore := postgres.NewPostgresStatsStore(tx, nil)
			err = statsStore.Upsert(ctx, stats)
			assert.ErrorIs(t, err, store.ErrCardNotFound)
		})
	})
}
