package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

var _ store.StatsStore = (*PostgresStatsStore)(nil)

// WithTx implements store.StatsStore.WithTx
func (s *PostgresStatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &PostgresStatsStore{db: tx, logger: s.logger}
}

// Get implements store.StatsStore.Get
func (s *PostgresStatsStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.CardReviewStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, card_id, interval, ease_factor, consecutive_correct,
		       last_reviewed_at, next_review_at, review_count, created_at, updated_at
		FROM card_review_stats
		WHERE user_id = $1 AND card_id = $2
	`

	var stats domain.CardReviewStats
	var lastReviewed sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&stats.UserID,
		&stats.CardID,
		&stats.Interval,
		&stats.EaseFactor,
		&stats.ConsecutiveCorrect,
		&lastReviewed,
		&stats.NextReviewAt,
		&stats.ReviewCount,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatsNotFound
		}
		log.Error("failed to get review stats",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	if lastReviewed.Valid {
		stats.LastReviewedAt = lastReviewed.Time
	}

	return &stats, nil
}

// Upsert implements store.StatsStore.Upsert
func (s *PostgresStatsStore) Upsert(ctx context.Context, stats *domain.CardReviewStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		log.Warn("review stats validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	var lastReviewed sql.NullTime
	if !stats.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: stats.LastReviewedAt, Valid: true}
	}

	query := `
		INSERT INTO card_review_stats (
			user_id, card_id, interval, ease_factor, consecutive_correct,
			last_reviewed_at, next_review_at, review_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			interval = EXCLUDED.interval,
			ease_factor = EXCLUDED.ease_factor,
			consecutive_correct = EXCLUDED.consecutive_correct,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at,
			review_count = EXCLUDED.review_count,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		stats.UserID,
		stats.CardID,
		stats.Interval,
		stats.EaseFactor,
		stats.ConsecutiveCorrect,
		lastReviewed,
		stats.NextReviewAt,
		stats.ReviewCount,
		stats.CreatedAt,
		stats.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrCardNotFound
		}
		log.Error("failed to upsert review stats",
			slog.String("error", err.Error()),
			slog.String("card_id", stats.CardID.String()))
		return err
	}

	return nil
}
