package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

// CardService provides operations on individual cards.
type CardService interface {
	// GetCard retrieves a card by ID.
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// UpdateCard replaces a card's front and back text.
	UpdateCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		content CardContent,
	) (*domain.Card, error)

	// DeleteCard removes a card and its review stats.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(cardStore store.CardStore, logger *slog.Logger) (CardService, error) {
	if cardStore == nil {
		return nil, fmt.Errorf("cardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	return s.cardStore.GetByID(ctx, userID, cardID)
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	content CardContent,
) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if err := card.UpdateSides(content.Front, content.Back); err != nil {
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return s.cardStore.Delete(ctx, userID, cardID)
}
