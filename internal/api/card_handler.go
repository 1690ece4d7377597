package api

import (
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/service"
)

// CardHandler handles single-card endpoints. Card creation lives under the
// deck routes; cards are addressed directly only once they exist.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// Get handles GET /api/cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// Update handles PUT /api/cards/{id}.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), userID, cardID, service.CardContent{
		Front: req.Front,
		Back:  req.Back,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// Delete handles DELETE /api/cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
