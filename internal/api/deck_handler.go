package api

import (
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/service"
)

// DeckHandler handles deck CRUD and card creation endpoints.
type DeckHandler struct {
	deckService service.DeckService
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

// List handles GET /api/decks.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// Create handles POST /api/decks.
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req DeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// Get handles GET /api/decks/{id}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	deck, cards, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckWithCardsResponse{Deck: deck, Cards: cards})
}

// Update handles PUT /api/decks/{id}.
func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req DeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.deckService.UpdateDeck(r.Context(), userID, deckID, req.Name, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// Delete handles DELETE /api/decks/{id}.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCard handles POST /api/decks/{id}/cards.
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.deckService.AddCard(r.Context(), userID, deckID, service.CardContent{
		Front: req.Front,
		Back:  req.Back,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ImportCards handles POST /api/decks/{id}/import.
func (h *DeckHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ImportCardsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contents := make([]service.CardContent, 0, len(req.Cards))
	for _, card := range req.Cards {
		contents = append(contents, service.CardContent{Front: card.Front, Back: card.Back})
	}

	cards, err := h.deckService.ImportCards(r.Context(), userID, deckID, contents)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cards)
}
