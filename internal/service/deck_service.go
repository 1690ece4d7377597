package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// CardContent is the raw front/back pair used for card creation and import.
type CardContent struct {
	Front string
	Back  string
}

// DeckService provides deck-related operations.
type DeckService interface {
	// CreateDeck creates a new deck for the user.
	CreateDeck(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)

	// GetDeck retrieves a deck together with its cards.
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, []domain.Card, error)

	// ListDecks returns all of the user's decks, newest first.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// UpdateDeck renames a deck and/or changes its description.
	UpdateDeck(
		ctx context.Context,
		userID, deckID uuid.UUID,
		name, description string,
	) (*domain.Deck, error)

	// DeleteDeck removes a deck and, via schema cascades, its cards.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error

	// AddCard creates a single card in the deck.
	AddCard(
		ctx context.Context,
		userID, deckID uuid.UUID,
		content CardContent,
	) (*domain.Card, error)

	// ImportCards creates a batch of cards atomically: either every card is
	// inserted or none are.
	ImportCards(
		ctx context.Context,
		userID, deckID uuid.UUID,
		contents []CardContent,
	) ([]*domain.Card, error)
}

type deckServiceImpl struct {
	db        *sql.DB
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService.
func NewDeckService(
	db *sql.DB,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	logger *slog.Logger,
) (DeckService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if deckStore == nil {
		return nil, fmt.Errorf("deckStore cannot be nil")
	}
	if cardStore == nil {
		return nil, fmt.Errorf("cardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		db:        db,
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "deck_service")),
	}, nil
}

// CreateDeck implements DeckService.CreateDeck
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	deck, err := domain.NewDeck(userID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, []domain.Card, error) {
	return s.deckStore.GetWithCards(ctx, userID, deckID)
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Deck, error) {
	return s.deckStore.List(ctx, userID)
}

// UpdateDeck implements DeckService.UpdateDeck
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	if err := deck.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	return s.deckStore.Delete(ctx, userID, deckID)
}

// AddCard implements DeckService.AddCard
func (s *deckServiceImpl) AddCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	content CardContent,
) (*domain.Card, error) {
	card, err := domain.NewCard(userID, deckID, content.Front, content.Back)
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// ImportCards implements DeckService.ImportCards
func (s *deckServiceImpl) ImportCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	contents []CardContent,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate the whole batch up front so nothing is inserted when one
	// entry is bad.
	cards := make([]*domain.Card, 0, len(contents))
	for _, content := range contents {
		card, err := domain.NewCard(userID, deckID, content.Front, content.Back)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		return nil, err
	}

	log.Info("cards imported",
		slog.Int("count", len(cards)),
		slog.String("deck_id", deckID.String()))
	return cards, nil
}
