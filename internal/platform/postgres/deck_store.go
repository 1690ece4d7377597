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

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}

// Create implements store.DeckStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.UserID,
		deck.Name,
		deck.Description,
		deck.CreatedAt,
		deck.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, deck.UserID)
		}

		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", deck.UserID.String()))
		return err
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *PostgresDeckStore) GetByID(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT d.id, d.user_id, d.name, d.description, COUNT(c.id), d.created_at, d.updated_at
		FROM decks d
		LEFT JOIN cards c ON c.deck_id = d.id
		WHERE d.id = $1 AND d.user_id = $2
		GROUP BY d.id
	`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, deckID, userID).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.Description,
		&deck.CardCount,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}

	return &deck, nil
}

// GetWithCards implements store.DeckStore.GetWithCards
func (s *PostgresDeckStore) GetWithCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, []domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.GetByID(ctx, userID, deckID)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT id, user_id, deck_id, front, back, created_at, updated_at
		FROM cards
		WHERE deck_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, deckID, userID)
	if err != nil {
		log.Error("failed to query deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, nil, err
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
			return nil, nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return deck, cards, nil
}

// List implements store.DeckStore.List
func (s *PostgresDeckStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT d.id, d.user_id, d.name, d.description, COUNT(c.id), d.created_at, d.updated_at
		FROM decks d
		LEFT JOIN cards c ON c.deck_id = d.id
		WHERE d.user_id = $1
		GROUP BY d.id
		ORDER BY d.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	decks := []*domain.Deck{}
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(
			&deck.ID,
			&deck.UserID,
			&deck.Name,
			&deck.Description,
			&deck.CardCount,
			&deck.CreatedAt,
			&deck.UpdatedAt,
		); err != nil {
			return nil, err
		}
		decks = append(decks, &deck)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return decks, nil
}

// Update implements store.DeckStore.Update
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		UPDATE decks
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.Name,
		deck.Description,
		time.Now().UTC(),
		deck.ID,
		deck.UserID,
	)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	log.Info("deck updated successfully",
		slog.String("deck_id", deck.ID.String()))
	return nil
}

// Delete implements store.DeckStore.Delete
// Cards and collection links are removed by ON DELETE CASCADE constraints.
func (s *PostgresDeckStore) Delete(ctx context.Context, userID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM decks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, deckID, userID)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	log.Info("deck deleted successfully",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// closeRows closes rows and logs any close error; scan errors take
// precedence so the close error is only logged.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
