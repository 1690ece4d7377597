package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/postgres"
)

// MustCreateUser inserts a user with a unique email and a MinCost-hashed
// password, failing the test on any error.
func MustCreateUser(t *testing.T, ctx context.Context, tx *sql.Tx) *domain.User {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.New().String())
	user, err := domain.NewUser(email, "correcthorsebattery")
	require.NoError(t, err)

	userStore := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
	require.NoError(t, userStore.Create(ctx, user))

	return user
}

// MustCreateDeck inserts a deck owned by the given user.
func MustCreateDeck(t *testing.T, ctx context.Context, tx *sql.Tx, userID uuid.UUID, name string) *domain.Deck {
	t.Helper()

	deck, err := domain.NewDeck(userID, name, "")
	require.NoError(t, err)

	deckStore := postgres.NewPostgresDeckStore(tx, nil)
	require.NoError(t, deckStore.Create(ctx, deck))

	return deck
}

// MustCreateCollection inserts a collection owned by the given user.
func MustCreateCollection(
	t *testing.T,
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	name string,
) *domain.Collection {
	t.Helper()

	collection, err := domain.NewCollection(userID, name, "")
	require.NoError(t, err)

	collectionStore := postgres.NewPostgresCollectionStore(tx, nil)
	require.NoError(t, collectionStore.Create(ctx, collection))

	return collection
}

// MustCreateCard inserts a card into the given deck.
func MustCreateCard(
	t *testing.T,
	ctx context.Context,
	tx *sql.Tx,
	userID, deckID uuid.UUID,
	front, back string,
) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(userID, deckID, front, back)
	require.NoError(t, err)

	cardStore := postgres.NewPostgresCardStore(tx, nil)
	require.NoError(t, cardStore.Create(ctx, card))

	return card
}

// MustCreateChat inserts a chat owned by the given user.
func MustCreateChat(t *testing.T, ctx context.Context, tx *sql.Tx, userID uuid.UUID, title string) *domain.Chat {
	t.Helper()

	chat, err := domain.NewChat(userID, title)
	require.NoError(t, err)

	chatStore := postgres.NewPostgresChatStore(tx, nil)
	require.NoError(t, chatStore.Create(ctx, chat))

	return chat
}
