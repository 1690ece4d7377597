package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/assistant"
	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// defaultChatTitle names chats created without an explicit title.
const defaultChatTitle = "New Chat"

// AssistantResponder produces one assistant turn for a user message,
// running tool calls as needed. *assistant.Runner is the production
// implementation.
type AssistantResponder interface {
	Respond(
		ctx context.Context,
		userID uuid.UUID,
		history []domain.Message,
		content string,
	) (*assistant.Reply, error)
}

// SendMessageResult is the outcome of one chat exchange: the persisted
// message pair plus any entities the assistant created along the way.
type SendMessageResult struct {
	UserMessage      *domain.Message            `json:"userMessage"`
	AssistantMessage *domain.Message            `json:"assistantMessage"`
	Created          *assistant.CreatedEntities `json:"createdEntities,omitempty"`
}

// ChatService provides chat-related operations, including the assistant
// exchange itself.
type ChatService interface {
	// CreateChat starts a new chat. A blank title falls back to a default.
	CreateChat(ctx context.Context, userID uuid.UUID, title string) (*domain.Chat, error)

	// ListChats returns all of the user's chats, most recently updated first.
	ListChats(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error)

	// GetChat retrieves a chat with its full message history.
	GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.ChatWithMessages, error)

	// RenameChat changes a chat's title.
	RenameChat(ctx context.Context, userID, chatID uuid.UUID, title string) error

	// DeleteChat removes a chat and its messages.
	DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error

	// SendMessage runs one full assistant exchange: it replays the chat's
	// history to the model, lets it invoke tools, and persists exactly one
	// user/assistant message pair. The tool loop completes before anything
	// is written, so a failed exchange leaves the chat untouched.
	SendMessage(
		ctx context.Context,
		userID, chatID uuid.UUID,
		content string,
	) (*SendMessageResult, error)
}

type chatServiceImpl struct {
	db        *sql.DB
	chatStore store.ChatStore
	responder AssistantResponder
	logger    *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(
	db *sql.DB,
	chatStore store.ChatStore,
	responder AssistantResponder,
	logger *slog.Logger,
) (ChatService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if chatStore == nil {
		return nil, fmt.Errorf("chatStore cannot be nil")
	}
	if responder == nil {
		return nil, fmt.Errorf("responder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &chatServiceImpl{
		db:        db,
		chatStore: chatStore,
		responder: responder,
		logger:    logger.With(slog.String("component", "chat_service")),
	}, nil
}

// CreateChat implements ChatService.CreateChat
func (s *chatServiceImpl) CreateChat(
	ctx context.Context,
	userID uuid.UUID,
	title string,
) (*domain.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultChatTitle
	}

	chat, err := domain.NewChat(userID, title)
	if err != nil {
		return nil, err
	}

	if err := s.chatStore.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// ListChats implements ChatService.ListChats
func (s *chatServiceImpl) ListChats(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Chat, error) {
	return s.chatStore.List(ctx, userID)
}

// GetChat implements ChatService.GetChat
func (s *chatServiceImpl) GetChat(
	ctx context.Context,
	userID, chatID uuid.UUID,
) (*domain.ChatWithMessages, error) {
	return s.chatStore.GetWithMessages(ctx, userID, chatID)
}

// RenameChat implements ChatService.RenameChat
func (s *chatServiceImpl) RenameChat(
	ctx context.Context,
	userID, chatID uuid.UUID,
	title string,
) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ErrEmptyChatTitle
	}
	return s.chatStore.UpdateTitle(ctx, userID, chatID, title)
}

// DeleteChat implements ChatService.DeleteChat
func (s *chatServiceImpl) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	return s.chatStore.Delete(ctx, userID, chatID)
}

// SendMessage implements ChatService.SendMessage
func (s *chatServiceImpl) SendMessage(
	ctx context.Context,
	userID, chatID uuid.UUID,
	content string,
) (*SendMessageResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	// History is fetched fresh on every send; no tool-loop state survives
	// between requests. This also serves as the ownership check.
	chat, err := s.chatStore.GetWithMessages(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	reply, err := s.responder.Respond(ctx, userID, chat.Messages, content)
	if err != nil {
		return nil, fmt.Errorf("assistant exchange failed: %w", err)
	}

	userMsg, err := domain.NewMessage(chatID, domain.MessageRoleUser, content)
	if err != nil {
		return nil, err
	}
	assistantMsg, err := domain.NewMessage(chatID, domain.MessageRoleAssistant, reply.Text)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.chatStore.WithTx(tx).AppendExchange(ctx, userID, chatID, userMsg, assistantMsg)
	})
	if err != nil {
		return nil, err
	}

	result := &SendMessageResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}
	if !reply.Created.IsEmpty() {
		result.Created = reply.Created
		log.Info("assistant created entities",
			slog.Int("decks", len(reply.Created.Decks)),
			slog.Int("collections", len(reply.Created.Collections)),
			slog.Int("cards", len(reply.Created.Cards)),
			slog.String("chat_id", chatID.String()))
	}

	return result, nil
}
