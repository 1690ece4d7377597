package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cardstack/cardstack-api/internal/assistant"
	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

// MockUserStore mocks the store.UserStore interface.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockDeckStore mocks the store.DeckStore interface.
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) GetByID(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) GetWithCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, []domain.Card, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Deck), args.Get(1).([]domain.Card), args.Error(2)
}

func (m *MockDeckStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, userID, deckID uuid.UUID) error {
	args := m.Called(ctx, userID, deckID)
	return args.Error(0)
}

func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return m }

// MockCardStore mocks the store.CardStore interface.
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCardStore) GetByID(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func (m *MockCardStore) ListRandomized(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]domain.Card, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore { return m }

// MockChatStore mocks the store.ChatStore interface.
type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chat), args.Error(1)
}

func (m *MockChatStore) GetWithMessages(
	ctx context.Context,
	userID, chatID uuid.UUID,
) (*domain.ChatWithMessages, error) {
	args := m.Called(ctx, userID, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatWithMessages), args.Error(1)
}

func (m *MockChatStore) UpdateTitle(
	ctx context.Context,
	userID, chatID uuid.UUID,
	title string,
) error {
	args := m.Called(ctx, userID, chatID, title)
	return args.Error(0)
}

func (m *MockChatStore) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

func (m *MockChatStore) AppendExchange(
	ctx context.Context,
	userID, chatID uuid.UUID,
	userMsg, assistantMsg *domain.Message,
) error {
	args := m.Called(ctx, userID, chatID, userMsg, assistantMsg)
	return args.Error(0)
}

func (m *MockChatStore) WithTx(tx *sql.Tx) store.ChatStore { return m }

// MockCollectionStore mocks the store.CollectionStore interface.
type MockCollectionStore struct {
	mock.Mock
}

func (m *MockCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionStore) GetByID(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionStore) GetWithDecks(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, []domain.Deck, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Collection), args.Get(1).([]domain.Deck), args.Error(2)
}

func (m *MockCollectionStore) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collection), args.Error(1)
}

func (m *MockCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionStore) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	args := m.Called(ctx, userID, collectionID)
	return args.Error(0)
}

func (m *MockCollectionStore) AddDeck(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	args := m.Called(ctx, userID, collectionID, deckID)
	return args.Error(0)
}

func (m *MockCollectionStore) RemoveDeck(
	ctx context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	args := m.Called(ctx, userID, collectionID, deckID)
	return args.Error(0)
}

func (m *MockCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore { return m }

// MockResponder mocks the AssistantResponder interface.
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(
	ctx context.Context,
	userID uuid.UUID,
	history []domain.Message,
	content string,
) (*assistant.Reply, error) {
	args := m.Called(ctx, userID, history, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Reply), args.Error(1)
}
