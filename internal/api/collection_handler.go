package api

import (
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/service"
)

// CollectionHandler handles collection CRUD and deck-link endpoints.
type CollectionHandler struct {
	collectionService service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// List handles GET /api/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	collections, err := h.collectionService.ListCollections(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collections)
}

// Create handles POST /api/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req CollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	collection, err := h.collectionService.CreateCollection(
		r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, collection)
}

// Get handles GET /api/collections/{id}.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	collection, decks, err := h.collectionService.GetCollection(r.Context(), userID, collectionID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CollectionWithDecksResponse{
		Collection: collection,
		Decks:      decks,
	})
}

// Update handles PUT /api/collections/{id}.
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	collection, err := h.collectionService.UpdateCollection(
		r.Context(), userID, collectionID, req.Name, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collection)
}

// Delete handles DELETE /api/collections/{id}. Member decks survive.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.collectionService.DeleteCollection(r.Context(), userID, collectionID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddDeck handles POST /api/collections/{id}/decks.
func (h *CollectionHandler) AddDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AddDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.collectionService.AddDeckToCollection(r.Context(), userID, collectionID, req.DeckID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveDeck handles DELETE /api/collections/{id}/decks/{deckID}.
func (h *CollectionHandler) RemoveDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "deckID")
	if !ok {
		return
	}

	err := h.collectionService.RemoveDeckFromCollection(r.Context(), userID, collectionID, deckID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
