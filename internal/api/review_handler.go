package api

import (
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/service"
)

// ReviewHandler handles study queue and review submission endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Queue handles GET /api/decks/{id}/review. The card order is freshly
// shuffled on every call.
func (h *ReviewHandler) Queue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.reviewService.GetQueue(r.Context(), userID, deckID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// Submit handles POST /api/cards/{id}/review.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	stats, err := h.reviewService.SubmitReview(
		r.Context(), userID, cardID, domain.ReviewOutcome(req.Outcome))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
