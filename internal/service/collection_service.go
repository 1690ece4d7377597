package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

// CollectionService provides collection-related operations.
//
// AddDeckToCollection deliberately runs as a single statement with no
// surrounding transaction: when the assistant creates a deck and then
// links it, a failed link leaves a perfectly usable deck behind that the
// user or the model can retry against.
type CollectionService interface {
	// CreateCollection creates a new collection for the user.
	CreateCollection(
		ctx context.Context,
		userID uuid.UUID,
		name, description string,
	) (*domain.Collection, error)

	// GetCollection retrieves a collection together with its decks.
	GetCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
	) (*domain.Collection, []domain.Deck, error)

	// ListCollections returns all of the user's collections, newest first.
	ListCollections(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error)

	// UpdateCollection renames a collection and/or changes its description.
	UpdateCollection(
		ctx context.Context,
		userID, collectionID uuid.UUID,
		name, description string,
	) (*domain.Collection, error)

	// DeleteCollection removes a collection; member decks are untouched.
	DeleteCollection(ctx context.Context, userID, collectionID uuid.UUID) error

	// AddDeckToCollection links an existing deck into a collection.
	AddDeckToCollection(ctx context.Context, userID, collectionID, deckID uuid.UUID) error

	// RemoveDeckFromCollection unlinks a deck without deleting it.
	RemoveDeckFromCollection(ctx context.Context, userID, collectionID, deckID uuid.UUID) error
}

type collectionServiceImpl struct {
	collectionStore store.CollectionStore
	logger          *slog.Logger
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(
	collectionStore store.CollectionStore,
	logger *slog.Logger,
) (CollectionService, error) {
	if collectionStore == nil {
		return nil, fmt.Errorf("collectionStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &collectionServiceImpl{
		collectionStore: collectionStore,
		logger:          logger.With(slog.String("component", "collection_service")),
	}, nil
}

// CreateCollection implements CollectionService.CreateCollection
func (s *collectionServiceImpl) CreateCollection(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Collection, error) {
	collection, err := domain.NewCollection(userID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.collectionStore.Create(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

// GetCollection implements CollectionService.GetCollection
func (s *collectionServiceImpl) GetCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, []domain.Deck, error) {
	return s.collectionStore.GetWithDecks(ctx, userID, collectionID)
}

// ListCollections implements CollectionService.ListCollections
func (s *collectionServiceImpl) ListCollections(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	return s.collectionStore.List(ctx, userID)
}

// UpdateCollection implements CollectionService.UpdateCollection
func (s *collectionServiceImpl) UpdateCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	name, description string,
) (*domain.Collection, error) {
	collection, err := s.collectionStore.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	if err := collection.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.collectionStore.Update(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

// DeleteCollection implements CollectionService.DeleteCollection
func (s *collectionServiceImpl) DeleteCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) error {
	return s.collectionStore.Delete(ctx, userID, collectionID)
}

// AddDeckToCollection implements CollectionService.AddDeckToCollection
func (s *collectionServiceImpl) AddDeckToCollection(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	return s.collectionStore.AddDeck(ctx, userID, collectionID, deckID)
}

// RemoveDeckFromCollection implements CollectionService.RemoveDeckFromCollection
func (s *collectionServiceImpl) RemoveDeckFromCollection(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	return s.collectionStore.RemoveDeck(ctx, userID, collectionID, deckID)
}
