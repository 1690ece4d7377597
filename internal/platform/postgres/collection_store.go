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

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of the
// CollectionStore interface.
func NewPostgresCollectionStore(db store.DBTX, logger *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{db: tx, logger: s.logger}
}

// Create implements store.CollectionStore.Create
func (s *PostgresCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("collection validation failed during create",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	query := `
		INSERT INTO collections (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		collection.ID,
		collection.UserID,
		collection.Name,
		collection.Description,
		collection.CreatedAt,
		collection.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, collection.UserID)
		}

		log.Error("failed to create collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	log.Info("collection created successfully",
		slog.String("collection_id", collection.ID.String()),
		slog.String("user_id", collection.UserID.String()))
	return nil
}

// GetByID implements store.CollectionStore.GetByID
func (s *PostgresCollectionStore) GetByID(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.user_id, c.name, c.description, COUNT(cd.deck_id), c.created_at, c.updated_at
		FROM collections c
		LEFT JOIN collection_decks cd ON cd.collection_id = c.id
		WHERE c.id = $1 AND c.user_id = $2
		GROUP BY c.id
	`

	var collection domain.Collection
	err := s.db.QueryRowContext(ctx, query, collectionID, userID).Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Name,
		&collection.Description,
		&collection.DeckCount,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCollectionNotFound
		}
		log.Error("failed to get collection by ID",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, err
	}

	return &collection, nil
}

// GetWithDecks implements store.CollectionStore.GetWithDecks
func (s *PostgresCollectionStore) GetWithDecks(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, []domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	collection, err := s.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT d.id, d.user_id, d.name, d.description, COUNT(ca.id), d.created_at, d.updated_at
		FROM collection_decks cd
		JOIN decks d ON d.id = cd.deck_id
		LEFT JOIN cards ca ON ca.deck_id = d.id
		WHERE cd.collection_id = $1 AND d.user_id = $2
		GROUP BY d.id
		ORDER BY d.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, collectionID, userID)
	if err != nil {
		log.Error("failed to query collection decks",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, nil, err
	}
	defer closeRows(rows, log)

	decks := []domain.Deck{}
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
			return nil, nil, err
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return collection, decks, nil
}

// List implements store.CollectionStore.List
func (s *PostgresCollectionStore) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.user_id, c.name, c.description, COUNT(cd.deck_id), c.created_at, c.updated_at
		FROM collections c
		LEFT JOIN collection_decks cd ON cd.collection_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list collections",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	collections := []*domain.Collection{}
	for rows.Next() {
		var collection domain.Collection
		if err := rows.Scan(
			&collection.ID,
			&collection.UserID,
			&collection.Name,
			&collection.Description,
			&collection.DeckCount,
			&collection.CreatedAt,
			&collection.UpdatedAt,
		); err != nil {
			return nil, err
		}
		collections = append(collections, &collection)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collections, nil
}

// Update implements store.CollectionStore.Update
func (s *PostgresCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("collection validation failed during update",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	query := `
		UPDATE collections
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		collection.Name,
		collection.Description,
		time.Now().UTC(),
		collection.ID,
		collection.UserID,
	)
	if err != nil {
		log.Error("failed to update collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCollectionNotFound
	}

	return nil
}

// Delete implements store.CollectionStore.Delete
// Join rows are removed by ON DELETE CASCADE; member decks are untouched.
func (s *PostgresCollectionStore) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM collections WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, collectionID, userID)
	if err != nil {
		log.Error("failed to delete collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCollectionNotFound
	}

	log.Info("collection deleted successfully",
		slog.String("collection_id", collectionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// AddDeck implements store.CollectionStore.AddDeck
// Both the collection and the deck must belong to userID; the INSERT's
// subselects enforce ownership so a cross-user id never creates a link.
func (s *PostgresCollectionStore) AddDeck(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Verify ownership of both endpoints before touching the join table so
	// the caller gets a precise not-found error.
	if _, err := s.GetByID(ctx, userID, collectionID); err != nil {
		return err
	}

	var deckExists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM decks WHERE id = $1 AND user_id = $2)`,
		deckID,
		userID,
	).Scan(&deckExists)
	if err != nil {
		return err
	}
	if !deckExists {
		return store.ErrDeckNotFound
	}

	query := `
		INSERT INTO collection_decks (collection_id, deck_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err = s.db.ExecContext(ctx, query, collectionID, deckID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDeckAlreadyInCollection
		}
		log.Error("failed to add deck to collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()),
			slog.String("deck_id", deckID.String()))
		return err
	}

	log.Info("deck added to collection",
		slog.String("collection_id", collectionID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}

// RemoveDeck implements store.CollectionStore.RemoveDeck
func (s *PostgresCollectionStore) RemoveDeck(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The USING clause scopes the delete to the caller's own collection.
	query := `
		DELETE FROM collection_decks cd
		USING collections c
		WHERE cd.collection_id = c.id
		  AND c.user_id = $1
		  AND cd.collection_id = $2
		  AND cd.deck_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, userID, collectionID, deckID)
	if err != nil {
		log.Error("failed to remove deck from collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()),
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

	log.Info("deck removed from collection",
		slog.String("collection_id", collectionID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}
