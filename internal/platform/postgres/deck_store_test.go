package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/platform/postgres"
	"github.com/cardstack/cardstack-api/internal/store"
	"github.com/cardstack/cardstack-api/internal/testutils"
)

func TestPostgresDeckStore_CRUD(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("GetByID includes the card count", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Spanish Vocabulary")
			testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, "hola", "hello")
			testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, "adios", "goodbye")

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			stored, err := deckStore.GetByID(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			assert.Equal(t, "Spanish Vocabulary", stored.Name)
			assert.Equal(t, 2, stored.CardCount)
		})
	})

	t.Run("GetWithCards returns the deck's cards", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Geography")
			card := testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, "Capital of France?", "Paris")

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			stored, cards, err := deckStore.GetWithCards(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			assert.Equal(t, deck.ID, stored.ID)
			require.Len(t, cards, 1)
			assert.Equal(t, card.ID, cards[0].ID)
			assert.Equal(t, "Paris", cards[0].Back)
		})
	})

	t.Run("List returns an empty slice for a new user", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			decks, err := deckStore.List(ctx, user.ID)
			require.NoError(t, err)
			assert.NotNil(t, decks)
			assert.Empty(t, decks)
		})
	})

	t.Run("Update renames the deck", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Old Name")

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			require.NoError(t, deck.Rename("New Name", deck.Description))
			require.NoError(t, deckStore.Update(ctx, deck))

			stored, err := deckStore.GetByID(ctx, user.ID, deck.ID)
			require.NoError(t, err)
			assert.Equal(t, "New Name", stored.Name)
		})
	})

	t.Run("Delete cascades to the deck's cards", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			user := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, user.ID, "Doomed")
			card := testutils.MustCreateCard(t, ctx, tx, user.ID, deck.ID, "front", "back")

			deckStore := postgres.NewPostgresDeckStore(tx, nil)
			require.NoError(t, deckStore.Delete(ctx, user.ID, deck.ID))

			cardStore := postgres.NewPostgresCardStore(tx, nil)
			_, err := cardStore.GetByID(ctx, user.ID, card.ID)
			assert.ErrorIs(t, err, store.ErrCardNotFound)
		})
	})
}

func TestPostgresDeckStore_OwnershipScoping(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("integration test environment not available, skipping")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)

	t.Run("another user's deck is indistinguishable from a missing one", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			owner := testutils.MustCreateUser(t, ctx, tx)
			intruder := testutils.MustCreateUser(t, ctx, tx)
			deck := testutils.MustCreateDeck(t, ctx, tx, owner.ID, "Private")

			deckStore := postgres.NewPostgresDeckStore(tx, nil)

			_, err := deckStore.GetByID(ctx, intruder.ID, deck.ID)
			assert.ErrorIs(t, err, store.ErrDeckNotFound)

			_, missErr := deckStore.GetByID(ctx, owner.ID, uuid.New())
			assert.Equal(t, missErr, err)

			err = deckStore.Delete(ctx, intruder.ID, deck.ID)
			assert.ErrorIs(t, err, store.ErrDeckNotFound)

			// Still intact for the owner.
			_, err = deckStore.GetByID(ctx, owner.ID, deck.ID)
			assert.NoError(t, err)
		})
	})
}
