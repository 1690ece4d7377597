package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// PostgresChatStore implements the store.ChatStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChatStore creates a new PostgreSQL implementation of the
// ChatStore interface.
func NewPostgresChatStore(db store.DBTX, logger *slog.Logger) *PostgresChatStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChatStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_store")),
	}
}

var _ store.ChatStore = (*PostgresChatStore)(nil)

// WithTx implements store.ChatStore.WithTx
func (s *PostgresChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return &PostgresChatStore{db: tx, logger: s.logger}
}

// Create implements store.ChatStore.Create
func (s *PostgresChatStore) Create(ctx context.Context, chat *domain.Chat) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := chat.Validate(); err != nil {
		log.Warn("chat validation failed during create",
			slog.String("error", err.Error()),
			slog.String("chat_id", chat.ID.String()))
		return err
	}

	query := `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		chat.ID,
		chat.UserID,
		chat.Title,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chat.ID.String()))
		return err
	}

	log.Info("chat created successfully",
		slog.String("chat_id", chat.ID.String()),
		slog.String("user_id", chat.UserID.String()))
	return nil
}

// List implements store.ChatStore.List
func (s *PostgresChatStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list chats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	chats := []*domain.Chat{}
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(
			&chat.ID,
			&chat.UserID,
			&chat.Title,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chats, nil
}

// GetWithMessages implements store.ChatStore.GetWithMessages
func (s *PostgresChatStore) GetWithMessages(
	ctx context.Context,
	userID, chatID uuid.UUID,
) (*domain.ChatWithMessages, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result domain.ChatWithMessages
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, title, created_at, updated_at FROM chats WHERE id = $1 AND user_id = $2`,
		chatID,
		userID,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.Title,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrChatNotFound
		}
		log.Error("failed to get chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, chat_id, role, content, created_at FROM messages WHERE chat_id = $1 ORDER BY created_at ASC, id ASC`,
		chatID,
	)
	if err != nil {
		log.Error("failed to query chat messages",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	result.Messages = []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result.Messages = append(result.Messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateTitle implements store.ChatStore.UpdateTitle
func (s *PostgresChatStore) UpdateTitle(
	ctx context.Context,
	userID, chatID uuid.UUID,
	title string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if title == "" {
		return domain.ErrEmptyChatTitle
	}

	query := `
		UPDATE chats
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, title, time.Now().UTC(), chatID, userID)
	if err != nil {
		log.Error("failed to update chat title",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrChatNotFound
	}

	return nil
}

// Delete implements store.ChatStore.Delete
func (s *PostgresChatStore) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM chats WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, chatID, userID)
	if err != nil {
		log.Error("failed to delete chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrChatNotFound
	}

	log.Info("chat deleted successfully",
		slog.String("chat_id", chatID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// AppendExchange implements store.ChatStore.AppendExchange
func (s *PostgresChatStore) AppendExchange(
	ctx context.Context,
	userID, chatID uuid.UUID,
	userMsg, assistantMsg *domain.Message,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, ok := s.db.(*sql.Tx); !ok {
		return store.ErrTransactionRequired
	}

	if err := userMsg.Validate(); err != nil {
		return err
	}
	if err := assistantMsg.Validate(); err != nil {
		return err
	}

	// Bumping updated_at first doubles as the ownership check: zero rows
	// means the chat is missing or belongs to someone else.
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE chats SET updated_at = $1 WHERE id = $2 AND user_id = $3`,
		time.Now().UTC(),
		chatID,
		userID,
	)
	if err != nil {
		log.Error("failed to touch chat for exchange",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrChatNotFound
	}

	insert := `
		INSERT INTO messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, msg := range []*domain.Message{userMsg, assistantMsg} {
		if _, err := s.db.ExecContext(
			ctx,
			insert,
			msg.ID,
			msg.ChatID,
			msg.Role,
			msg.Content,
			msg.CreatedAt,
		); err != nil {
			log.Error("failed to insert chat message",
				slog.String("error", err.Error()),
				slog.String("message_id", msg.ID.String()))
			return err
		}
	}

	log.Info("exchange appended to chat",
		slog.String("chat_id", chatID.String()),
		slog.String("user_message_id", userMsg.ID.String()),
		slog.String("assistant_message_id", assistantMsg.ID.String()))
	return nil
}
