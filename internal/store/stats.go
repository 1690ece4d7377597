package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// StatsStore defines the interface for spaced-repetition stats persistence.
// Rows are keyed by (user_id, card_id).
type StatsStore interface {
	// Get retrieves the review stats for a user/card pair.
	// Returns ErrStatsNotFound if the card has never been reviewed.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardReviewStats, error)

	// Upsert inserts or replaces the review stats for a user/card pair.
	Upsert(ctx context.Context, stats *domain.CardReviewStats) error

	// WithTx returns a StatsStore bound to the given transaction.
	WithTx(tx *sql.Tx) StatsStore
}
