package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *mockUserService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

type mockDeckService struct {
	mock.Mock
}

func (m *mockDeckService) CreateDeck(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error) {
	args := m.Called(ctx, userID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *mockDeckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, []domain.Card, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Deck), args.Get(1).([]domain.Card), args.Error(2)
}

func (m *mockDeckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *mockDeckService) UpdateDeck(ctx context.Context, userID, deckID uuid.UUID, name, description string) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *mockDeckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	args := m.Called(ctx, userID, deckID)
	return args.Error(0)
}

func (m *mockDeckService) AddCard(ctx context.Context, userID, deckID uuid.UUID, content service.CardContent) (*domain.Card, error) {
	args := m.Called(ctx, userID, deckID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockDeckService) ImportCards(ctx context.Context, userID, deckID uuid.UUID, contents []service.CardContent) ([]*domain.Card, error) {
	args := m.Called(ctx, userID, deckID, contents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

type mockCollectionService struct {
	mock.Mock
}

func (m *mockCollectionService) CreateCollection(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Collection, error) {
	args := m.Called(ctx, userID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *mockCollectionService) GetCollection(ctx context.Context, userID, collectionID uuid.UUID) (*domain.Collection, []domain.Deck, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Collection), args.Get(1).([]domain.Deck), args.Error(2)
}

func (m *mockCollectionService) ListCollections(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collection), args.Error(1)
}

func (m *mockCollectionService) UpdateCollection(ctx context.Context, userID, collectionID uuid.UUID, name, description string) (*domain.Collection, error) {
	args := m.Called(ctx, userID, collectionID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *mockCollectionService) DeleteCollection(ctx context.Context, userID, collectionID uuid.UUID) error {
	args := m.Called(ctx, userID, collectionID)
	return args.Error(0)
}

func (m *mockCollectionService) AddDeckToCollection(ctx context.Context, userID, collectionID, deckID uuid.UUID) error {
	args := m.Called(ctx, userID, collectionID, deckID)
	return args.Error(0)
}

func (m *mockCollectionService) RemoveDeckFromCollection(ctx context.Context, userID, collectionID, deckID uuid.UUID) error {
	args := m.Called(ctx, userID, collectionID, deckID)
	return args.Error(0)
}

type mockCardService struct {
	mock.Mock
}

func (m *mockCardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, content service.CardContent) (*domain.Card, error) {
	args := m.Called(ctx, userID, cardID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

type mockChatService struct {
	mock.Mock
}

func (m *mockChatService) CreateChat(ctx context.Context, userID uuid.UUID, title string) (*domain.Chat, error) {
	args := m.Called(ctx, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *mockChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chat), args.Error(1)
}

func (m *mockChatService) GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.ChatWithMessages, error) {
	args := m.Called(ctx, userID, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatWithMessages), args.Error(1)
}

func (m *mockChatService) RenameChat(ctx context.Context, userID, chatID uuid.UUID, title string) error {
	args := m.Called(ctx, userID, chatID, title)
	return args.Error(0)
}

func (m *mockChatService) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

func (m *mockChatService) SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*service.SendMessageResult, error) {
	args := m.Called(ctx, userID, chatID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendMessageResult), args.Error(1)
}

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) GetQueue(ctx context.Context, userID, deckID uuid.UUID) ([]domain.Card, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *mockReviewService) SubmitReview(ctx context.Context, userID, cardID uuid.UUID, outcome domain.ReviewOutcome) (*domain.CardReviewStats, error) {
	args := m.Called(ctx, userID, cardID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardReviewStats), args.Error(1)
}
