package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewOutcome represents the result of a card review.
type ReviewOutcome string

// Possible review outcome values.
const (
	ReviewOutcomeAgain ReviewOutcome = "again"
	ReviewOutcomeHard  ReviewOutcome = "hard"
	ReviewOutcomeGood  ReviewOutcome = "good"
	ReviewOutcomeEasy  ReviewOutcome = "easy"
)

// Review stats validation errors
var (
	ErrEmptyStatsUserID     = errors.New("review stats user ID cannot be empty")
	ErrEmptyStatsCardID     = errors.New("review stats card ID cannot be empty")
	ErrInvalidInterval      = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor    = errors.New("ease factor must be greater than 1.0")
	ErrInvalidReviewOutcome = errors.New("invalid review outcome")
)

// IsValid reports whether the outcome is one of the four known values.
func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return true
	}
	return false
}

// CardReviewStats tracks a user's spaced repetition state for one card.
// It follows an SM-2 variant: interval in days, ease factor between 1.3
// and 2.5, and a consecutive-correct counter reset on lapses.
type CardReviewStats struct {
	UserID             uuid.UUID `json:"user_id"`
	CardID             uuid.UUID `json:"card_id"`
	Interval           int       `json:"interval"`
	EaseFactor         float64   `json:"ease_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	LastReviewedAt     time.Time `json:"last_reviewed_at"`
	NextReviewAt       time.Time `json:"next_review_at"`
	ReviewCount        int       `json:"review_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewCardReviewStats creates review stats for a user/card pair with
// defaults that make the card immediately available for review.
func NewCardReviewStats(userID, cardID uuid.UUID) (*CardReviewStats, error) {
	now := time.Now().UTC()
	stats := &CardReviewStats{
		UserID:       userID,
		CardID:       cardID,
		Interval:     0,
		EaseFactor:   2.5,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Validate checks if the CardReviewStats has valid data.
func (s *CardReviewStats) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStatsUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStatsCardID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}
