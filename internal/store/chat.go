package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// ChatStore defines the interface for chat and message persistence.
// Messages are append-only; only whole user/assistant exchanges are ever
// written, so a chat's history never contains a dangling user turn.
type ChatStore interface {
	// Create saves a new chat.
	Create(ctx context.Context, chat *domain.Chat) error

	// List returns all of the user's chats, most recently updated first.
	// An empty result is a non-nil empty slice.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error)

	// GetWithMessages retrieves a chat and its full message history,
	// oldest message first. Returns ErrChatNotFound on a miss.
	GetWithMessages(ctx context.Context, userID, chatID uuid.UUID) (*domain.ChatWithMessages, error)

	// UpdateTitle renames a chat. Returns ErrChatNotFound on a miss.
	UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error

	// Delete removes a chat and its messages (cascade).
	// Returns ErrChatNotFound on a miss.
	Delete(ctx context.Context, userID, chatID uuid.UUID) error

	// AppendExchange persists exactly one user/assistant message pair and
	// bumps the chat's updated_at. It must run inside a transaction so a
	// half-written exchange can never become visible. Returns
	// ErrChatNotFound if the chat does not exist under this user.
	AppendExchange(
		ctx context.Context,
		userID, chatID uuid.UUID,
		userMsg, assistantMsg *domain.Message,
	) error

	// WithTx returns a ChatStore bound to the given transaction.
	WithTx(tx *sql.Tx) ChatStore
}
