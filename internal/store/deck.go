package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
//
// Every read and mutation is scoped to a user ID; a deck belonging to a
// different user surfaces as ErrDeckNotFound, never as a permission error.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by ID under the given user, including its
	// current card count. Returns ErrDeckNotFound on a miss.
	GetByID(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)

	// GetWithCards retrieves a deck along with all of its cards.
	// Returns ErrDeckNotFound on a miss.
	GetWithCards(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, []domain.Card, error)

	// List returns all of the user's decks with card counts, newest first.
	// An empty result is a non-nil empty slice.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update saves the deck's name and description.
	// Returns ErrDeckNotFound if no deck matched the ID and owner.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck. Cards and collection links cascade at the
	// schema level. Returns ErrDeckNotFound on a miss.
	Delete(ctx context.Context, userID, deckID uuid.UUID) error

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
