// Package srs implements the spaced-repetition scheduling used by card
// reviews. The algorithm is an SM-2 variant: each review outcome adjusts a
// card's ease factor and interval, lapses reset progress, and failed cards
// come back within minutes instead of days.
package srs

import (
	"github.com/cardstack/cardstack-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	MinEaseFactor float64
	MaxEaseFactor float64

	// Per-outcome adjustments applied to the ease factor after a review.
	EaseFactorAdjustment map[domain.ReviewOutcome]float64

	// Per-outcome multipliers applied to the current interval.
	IntervalModifier map[domain.ReviewOutcome]float64

	// Intervals in days for a card's very first successful review.
	FirstReviewIntervals map[domain.ReviewOutcome]int

	// Minutes until a failed ("again") card is shown again.
	AgainReviewMinutes int
}

// NewDefaultParams returns the standard tuning.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		EaseFactorAdjustment: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: -0.20,
			domain.ReviewOutcomeHard:  -0.15,
			domain.ReviewOutcomeGood:  0.0,
			domain.ReviewOutcomeEasy:  0.15,
		},

		IntervalModifier: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: 0.0,
			domain.ReviewOutcomeHard:  1.2,
			domain.ReviewOutcomeGood:  1.0, // ease factor applies directly
			domain.ReviewOutcomeEasy:  1.3,
		},

		FirstReviewIntervals: map[domain.ReviewOutcome]int{
			domain.ReviewOutcomeHard: 1,
			domain.ReviewOutcomeGood: 1,
			domain.ReviewOutcomeEasy: 2,
		},

		AgainReviewMinutes: 10,
	}
}
