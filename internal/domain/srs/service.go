package srs

import (
	"errors"
	"time"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// Common errors
var (
	ErrNilStats       = errors.New("card review stats cannot be nil")
	ErrInvalidOutcome = errors.New("invalid review outcome")
)

// Service computes spaced-repetition schedules.
type Service interface {
	// CalculateNextReview computes new stats based on a review outcome.
	CalculateNextReview(
		stats *domain.CardReviewStats,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.CardReviewStats, error)
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates an SRS service with the standard tuning.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates an SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

func (s *defaultService) CalculateNextReview(
	stats *domain.CardReviewStats,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.CardReviewStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}

	return nextStats(stats, outcome, now, s.params), nil
}
