package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// CollectionStore defines the interface for collection data persistence.
// The deck/collection many-to-many join lives behind AddDeck/RemoveDeck;
// callers never see join rows directly.
type CollectionStore interface {
	// Create saves a new collection to the store.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by ID under the given user, including
	// its current deck count. Returns ErrCollectionNotFound on a miss.
	GetByID(ctx context.Context, userID, collectionID uuid.UUID) (*domain.Collection, error)

	// GetWithDecks retrieves a collection along with its member decks.
	// Returns ErrCollectionNotFound on a miss.
	GetWithDecks(
		ctx context.Context,
		userID, collectionID uuid.UUID,
	) (*domain.Collection, []domain.Deck, error)

	// List returns all of the user's collections with deck counts, newest
	// first. An empty result is a non-nil empty slice.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error)

	// Update saves the collection's name and description.
	// Returns ErrCollectionNotFound if no row matched the ID and owner.
	Update(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection. Join rows cascade; member decks survive.
	// Returns ErrCollectionNotFound on a miss.
	Delete(ctx context.Context, userID, collectionID uuid.UUID) error

	// AddDeck links a deck into a collection. Ownership of both rows is
	// re-verified; a miss on either side returns the corresponding
	// not-found error. Linking twice returns ErrDeckAlreadyInCollection.
	AddDeck(ctx context.Context, userID, collectionID, deckID uuid.UUID) error

	// RemoveDeck unlinks a deck from a collection. Returns
	// ErrDeckNotFound if no such link exists under this user.
	RemoveDeck(ctx context.Context, userID, collectionID, deckID uuid.UUID) error

	// WithTx returns a CollectionStore bound to the given transaction.
	WithTx(tx *sql.Tx) CollectionStore
}
