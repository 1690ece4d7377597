package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/postgres"
	"github.com/cardstack/cardstack-api/internal/store"
	"github.com/cardstack/cardstack-api/internal/testutils"
)

func TestPostgresCardStore_Create(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("refuses a deck owned by another user", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			other := testutils.MustCreateUser(t, ctx, tx)
			foreignDeck := testutils.MustCreateDeck(t, ctx, tx, other.ID, "Not Yours")

			card, err := domain.NewCard(user.ID, foreignDeck.ID, "front", "back")
			require.NoError(t, err)

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			err = cardStore.Create(ctx, card)
			assert.ErrorIs(t, err, store.ErrDeckNotFound)
		})
	})
}

func TestPostgresCardStore_CreateMultiple(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("requires a transaction", func(t *testing.T) {
		ctx := context.Background()
		cardStore := postgres.NewPostgresCardStore(db, nil)

		err := cardStore.CreateMultiple(ctx, nil)
		assert.ErrorIs(t, err, store.ErrTransactionRequired)
	})

	t.Run("inserts the whole batch", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Batch")

			cards := make([]*domain.Card, 0, 3)
			for _, front := range []string{"one", "two", "three"} {
				card, err := domain.NewCard(user.ID, deck.ID, front, "back of "+front)
				require.NoError(t, err)
				cards = append(cards, card)
			}

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			require.NoError(t, cardStore.CreateMultiple(ctx, cards))

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			stored, err := deckStore.GetByID(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, stored.CardCount)
		})
	})
}

func TestPostgresCardStore_ListRandomized(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("returns every card in the deck", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Queue")

			want := map[string]bool{}
			for _, front := range []string{"a", "b", "c", "d"} {
				testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, front, "back")
				want[front] = true
			}

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			cards, err := cardStore.ListRandomized(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			require.Len(t, cards, len(want))

			got := map[string]bool{}
			for _, card := range cards {
				got[card.Front] = true
			}
			assert.Equal(t, want, got)
		})
	})

	t.Run("empty deck yields a non-nil empty slice", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Empty")

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			cards, err := cardStore.ListRandomized(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			assert.NotNil(t, cards)
			assert.Empty(t, cards)
		})
	})

	t.Run("missing deck reports not found", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			other := testutils.MustCreateUser(t, ctx, tx)
			foreignDeck := testutils.MustCreateDeck(t, ctx, tx, other.ID, "Not Yours")

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			_, err := cardStore.ListRandomized(ctx, user.ID, foreignDeck.ID)
			assert.ErrorIs(t, err, store.ErrDeckNotFound)
		})
	})
}
