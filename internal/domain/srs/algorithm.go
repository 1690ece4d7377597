package srs

import (
	"time"

	"github.com/cardstack/cardstack-api/internal/domain"
)

// nextEaseFactor applies the outcome's adjustment and clamps the result to
// the configured bounds.
func nextEaseFactor(current float64, outcome domain.ReviewOutcome, params *Params) float64 {
	ef := current + params.EaseFactorAdjustment[outcome]

	if ef < params.MinEaseFactor {
		ef = params.MinEaseFactor
	}
	if ef > params.MaxEaseFactor {
		ef = params.MaxEaseFactor
	}

	return ef
}

// nextInterval computes the new interval in days.
//
// "Again" resets the interval to zero. First reviews use the configured
// starting intervals. After a lapse (consecutive correct is zero but an
// interval exists) a "good" answer grows the interval by a conservative
// 1.5x instead of the full ease factor. Otherwise the interval grows by
// the outcome modifier, with "good" using the ease factor directly and
// "easy" multiplying its modifier by the ease factor on top.
func nextInterval(
	currentInterval int,
	consecutiveCorrect int,
	easeFactor float64,
	outcome domain.ReviewOutcome,
	params *Params,
) int {
	if outcome == domain.ReviewOutcomeAgain {
		return 0
	}

	if currentInterval == 0 {
		return params.FirstReviewIntervals[outcome]
	}

	if consecutiveCorrect == 0 && outcome == domain.ReviewOutcomeGood {
		return int(float64(currentInterval) * 1.5)
	}

	var modifier float64
	if outcome == domain.ReviewOutcomeGood {
		modifier = easeFactor
	} else {
		modifier = params.IntervalModifier[outcome]
		if outcome == domain.ReviewOutcomeEasy {
			modifier *= easeFactor
		}
	}

	return int(float64(currentInterval) * modifier)
}

// nextReviewDate schedules the next review. Failed cards come back in
// minutes; everything else waits the full interval in days.
func nextReviewDate(interval int, outcome domain.ReviewOutcome, now time.Time, params *Params) time.Time {
	if outcome == domain.ReviewOutcomeAgain {
		return now.Add(time.Duration(params.AgainReviewMinutes) * time.Minute)
	}

	return now.AddDate(0, 0, interval)
}

// nextStats returns a new CardReviewStats reflecting the review outcome.
// The input stats are never mutated.
func nextStats(
	stats *domain.CardReviewStats,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) *domain.CardReviewStats {
	updated := *stats

	updated.ReviewCount++
	updated.LastReviewedAt = now
	updated.EaseFactor = nextEaseFactor(stats.EaseFactor, outcome, params)

	if outcome == domain.ReviewOutcomeAgain {
		updated.ConsecutiveCorrect = 0
	} else {
		updated.ConsecutiveCorrect++
	}

	updated.Interval = nextInterval(
		stats.Interval,
		stats.ConsecutiveCorrect,
		updated.EaseFactor,
		outcome,
		params,
	)
	updated.NextReviewAt = nextReviewDate(updated.Interval, outcome, now, params)
	updated.UpdatedAt = now

	return &updated
}
