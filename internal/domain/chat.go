package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who produced a chat message.
type MessageRole string

// Possible message roles. Tool-call intermediate turns are never persisted,
// so no tool role exists at the domain level.
const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Chat and Message validation errors
var (
	ErrEmptyChatID        = errors.New("chat ID cannot be empty")
	ErrEmptyChatUserID    = errors.New("chat user ID cannot be empty")
	ErrEmptyChatTitle     = errors.New("chat title cannot be empty")
	ErrEmptyMessageID     = errors.New("message ID cannot be empty")
	ErrEmptyMessageChatID = errors.New("message chat ID cannot be empty")
	ErrEmptyMessage       = errors.New("message content cannot be empty")
	ErrInvalidMessageRole = errors.New("invalid message role")
)

// Chat is a conversation between a user and the AI assistant.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatWithMessages is a chat plus its full message history, oldest first.
type ChatWithMessages struct {
	Chat
	Messages []Message `json:"messages"`
}

// Message is a single persisted turn in a chat. Messages are immutable
// once stored.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	ChatID    uuid.UUID   `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewChat creates a new Chat for the given user.
func NewChat(userID uuid.UUID, title string) (*Chat, error) {
	now := time.Now().UTC()
	chat := &Chat{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := chat.Validate(); err != nil {
		return nil, err
	}

	return chat, nil
}

// Validate checks if the Chat has valid data.
func (c *Chat) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyChatID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyChatUserID
	}

	if c.Title == "" {
		return ErrEmptyChatTitle
	}

	return nil
}

// NewMessage creates a new Message in the given chat.
func NewMessage(chatID uuid.UUID, role MessageRole, content string) (*Message, error) {
	msg := &Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMessageID
	}

	if m.ChatID == uuid.Nil {
		return ErrEmptyMessageChatID
	}

	if m.Role != MessageRoleUser && m.Role != MessageRoleAssistant {
		return ErrInvalidMessageRole
	}

	if m.Content == "" {
		return ErrEmptyMessage
	}

	return nil
}
