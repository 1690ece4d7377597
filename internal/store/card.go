package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a single card. Returns ErrDeckNotFound if the target
	// deck does not exist under the card's user.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple saves multiple cards atomically. It must run inside a
	// transaction (use WithTx together with RunInTransaction); outside one,
	// a mid-batch failure can leave a partial insert.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by ID under the given user.
	// Returns ErrCardNotFound on a miss.
	GetByID(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// Update saves the card's front and back text.
	// Returns ErrCardNotFound if no row matched the ID and owner.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card. Review stats cascade at the schema level.
	// Returns ErrCardNotFound on a miss.
	Delete(ctx context.Context, userID, cardID uuid.UUID) error

	// ListRandomized returns the deck's cards in random order, forming the
	// shuffled study queue. Returns ErrDeckNotFound if the deck itself is
	// missing; an empty deck yields a non-nil empty slice.
	ListRandomized(ctx context.Context, userID, deckID uuid.UUID) ([]domain.Card, error)

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
