package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

func newChatServiceForTest(t *testing.T) (ChatService, *MockChatStore, *MockResponder) {
	t.Helper()

	chatStore := new(MockChatStore)
	responder := new(MockResponder)
	svc, err := NewChatService(&sql.DB{}, chatStore, responder, nil)
	require.NoError(t, err)
	return svc, chatStore, responder
}

func TestNewChatService_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewChatService(nil, new(MockChatStore), new(MockResponder), nil)
	assert.Error(t, err)

	_, err = NewChatService(&sql.DB{}, nil, new(MockResponder), nil)
	assert.Error(t, err)

	_, err = NewChatService(&sql.DB{}, new(MockChatStore), nil, nil)
	assert.Error(t, err)
}

func TestCreateChat_DefaultTitle(t *testing.T) {
	t.Parallel()

	svc, chatStore, _ := newChatServiceForTest(t)
	userID := uuid.New()

	chatStore.On("Create", mock.Anything, mock.MatchedBy(func(chat *domain.Chat) bool {
		return chat.Title == "New Chat" && chat.UserID == userID
	})).Return(nil)

	chat, err := svc.CreateChat(context.Background(), userID, "   ")
	require.NoError(t, err)
	assert.Equal(t, "New Chat", chat.Title)
	chatStore.AssertExpectations(t)
}

func TestCreateChat_ExplicitTitle(t *testing.T) {
	t.Parallel()

	svc, chatStore, _ := newChatServiceForTest(t)

	chatStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	chat, err := svc.CreateChat(context.Background(), uuid.New(), "  Study plan  ")
	require.NoError(t, err)
	assert.Equal(t, "Study plan", chat.Title)
}

func TestRenameChat_BlankTitle(t *testing.T) {
	t.Parallel()

	svc, chatStore, _ := newChatServiceForTest(t)

	err := svc.RenameChat(context.Background(), uuid.New(), uuid.New(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyChatTitle)
	chatStore.AssertNotCalled(t, "UpdateTitle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRenameChat_TrimsTitle(t *testing.T) {
	t.Parallel()

	svc, chatStore, _ := newChatServiceForTest(t)
	userID, chatID := uuid.New(), uuid.New()

	chatStore.On("UpdateTitle", mock.Anything, userID, chatID, "Renamed").Return(nil)

	err := svc.RenameChat(context.Background(), userID, chatID, "  Renamed  ")
	require.NoError(t, err)
	chatStore.AssertExpectations(t)
}

func TestSendMessage_EmptyContent(t *testing.T) {
	t.Parallel()

	svc, chatStore, responder := newChatServiceForTest(t)

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "  \n ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	chatStore.AssertNotCalled(t, "GetWithMessages", mock.Anything, mock.Anything, mock.Anything)
	responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_ChatNotFound(t *testing.T) {
	t.Parallel()

	svc, chatStore, responder := newChatServiceForTest(t)
	userID, chatID := uuid.New(), uuid.New()

	chatStore.On("GetWithMessages", mock.Anything, userID, chatID).
		Return(nil, store.ErrChatNotFound)

	_, err := svc.SendMessage(context.Background(), userID, chatID, "hello")
	assert.ErrorIs(t, err, store.ErrChatNotFound)
	responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_AssistantFailureWritesNothing(t *testing.T) {
	t.Parallel()

	svc, chatStore, responder := newChatServiceForTest(t)
	userID, chatID := uuid.New(), uuid.New()

	chat := &domain.ChatWithMessages{Messages: []domain.Message{}}
	chat.ID = chatID
	chat.UserID = userID
	chat.Title = "Study"

	chatStore.On("GetWithMessages", mock.Anything, userID, chatID).Return(chat, nil)
	responder.On("Respond", mock.Anything, userID, chat.Messages, "hello").
		Return(nil, errors.New("model unavailable"))

	_, err := svc.SendMessage(context.Background(), userID, chatID, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
	chatStore.AssertNotCalled(t, "AppendExchange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
