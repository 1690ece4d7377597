package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	// The subselect pins the deck to the card's owner, so a foreign deck ID
	// inserts zero rows instead of leaking across users.
	query := `
		INSERT INTO cards (id, user_id, deck_id, front, back, created_at, updated_at)
		SELECT $1, $2, d.id, $4, $5, $6, $7
		FROM decks d
		WHERE d.id = $3 AND d.user_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		card.DeckID,
		card.Front,
		card.Back,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: deck with ID %s", store.ErrDeckNotFound, card.DeckID)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, ok := s.db.(*sql.Tx); !ok {
		return store.ErrTransactionRequired
	}

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			log.Warn("batch card insert aborted",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return err
		}
	}

	log.Info("cards created successfully", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, deck_id, front, back, created_at, updated_at
		FROM cards
		WHERE id = $1 AND user_id = $2
	`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, cardID, userID).Scan(
		&card.ID,
		&card.UserID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	return &card, nil
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET front = $1, back = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Front,
		card.Back,
		time.Now().UTC(),
		card.ID,
		card.UserID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM cards WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, cardID, userID)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	log.Info("card deleted successfully",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ListRandomized implements store.CardStore.ListRandomized
func (s *PostgresCardStore) ListRandomized(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deckExists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM decks WHERE id = $1 AND user_id = $2)`,
		deckID,
		userID,
	).Scan(&deckExists)
	if err != nil {
		return nil, err
	}
	if !deckExists {
		return nil, store.ErrDeckNotFound
	}

	query := `
		SELECT id, user_id, deck_id, front, back, created_at, updated_at
		FROM cards
		WHERE deck_id = $1 AND user_id = $2
		ORDER BY random()
	`

	rows, err := s.db.QueryContext(ctx, query, deckID, userID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	cards := []domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.DeckID,
			&card.Front,
			&card.Back,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}
