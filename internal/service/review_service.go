package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/domain/srs"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// ReviewService drives study sessions: it hands out a shuffled queue of
// cards for a deck and applies spaced-repetition scheduling to review
// outcomes.
type ReviewService interface {
	// GetQueue returns the deck's cards in a fresh random order.
	GetQueue(ctx context.Context, userID, deckID uuid.UUID) ([]domain.Card, error)

	// SubmitReview records a review outcome for a card and returns the
	// updated scheduling stats. First-ever reviews start from default
	// stats; the read-modify-write runs in a transaction.
	SubmitReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		outcome domain.ReviewOutcome,
	) (*domain.CardReviewStats, error)
}

type reviewServiceImpl struct {
	db         *sql.DB
	cardStore  store.CardStore
	statsStore store.StatsStore
	srsService srs.Service
	timeFunc   func() time.Time
	logger     *slog.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	statsStore store.StatsStore,
	srsService srs.Service,
	logger *slog.Logger,
) (ReviewService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if cardStore == nil {
		return nil, fmt.Errorf("cardStore cannot be nil")
	}
	if statsStore == nil {
		return nil, fmt.Errorf("statsStore cannot be nil")
	}
	if srsService == nil {
		return nil, fmt.Errorf("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:         db,
		cardStore:  cardStore,
		statsStore: statsStore,
		srsService: srsService,
		timeFunc:   time.Now,
		logger:     logger.With(slog.String("component", "review_service")),
	}, nil
}

// GetQueue implements ReviewService.GetQueue
func (s *reviewServiceImpl) GetQueue(
	ctx context.Context,
	userID, deckID uuid.UUID,
) ([]domain.Card, error) {
	return s.cardStore.ListRandomized(ctx, userID, deckID)
}

// SubmitReview implements ReviewService.SubmitReview
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	outcome domain.ReviewOutcome,
) (*domain.CardReviewStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !outcome.IsValid() {
		return nil, domain.ErrInvalidReviewOutcome
	}

	// Card must exist under this user before any stats are written.
	if _, err := s.cardStore.GetByID(ctx, userID, cardID); err != nil {
		return nil, err
	}

	var updated *domain.CardReviewStats
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStats := s.statsStore.WithTx(tx)

		stats, err := txStats.Get(ctx, userID, cardID)
		if err != nil {
			if !errors.Is(err, store.ErrStatsNotFound) {
				return err
			}
			stats, err = domain.NewCardReviewStats(userID, cardID)
			if err != nil {
				return err
			}
		}

		updated, err = s.srsService.CalculateNextReview(stats, outcome, s.timeFunc().UTC())
		if err != nil {
			return err
		}

		return txStats.Upsert(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	log.Info("review recorded",
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int("interval", updated.Interval))
	return updated, nil
}
