package api

import (
	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/assistant"
	"github.com/cardstack/cardstack-api/internal/domain"
)

// Auth requests and responses

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the payload for refreshing an access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries a token pair after register, login or refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// Deck requests and responses

// DeckRequest is the payload for creating or updating a deck.
type DeckRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// DeckWithCardsResponse is a deck plus its full card list.
type DeckWithCardsResponse struct {
	*domain.Deck
	Cards []domain.Card `json:"cards"`
}

// Collection requests

// CollectionRequest is the payload for creating or updating a collection.
type CollectionRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// AddDeckRequest links a deck into a collection.
type AddDeckRequest struct {
	DeckID uuid.UUID `json:"deck_id" validate:"required"`
}

// CollectionWithDecksResponse is a collection plus its member decks.
type CollectionWithDecksResponse struct {
	*domain.Collection
	Decks []domain.Deck `json:"decks"`
}

// Card requests

// CardRequest is the payload for creating or updating a card.
type CardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// ImportCardsRequest is the payload for bulk card import.
type ImportCardsRequest struct {
	Cards []CardRequest `json:"cards" validate:"required,min=1,dive"`
}

// Chat requests and responses

// CreateChatRequest starts a new chat. Title is optional.
type CreateChatRequest struct {
	Title string `json:"title" validate:"max=200"`
}

// RenameChatRequest changes a chat's title.
type RenameChatRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// SendMessageRequest carries one user message to the assistant.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SendMessageResponse is the persisted exchange plus anything the
// assistant created through tools. The client store uses CreatedEntities
// to reflect AI-driven mutations without a refetch.
type SendMessageResponse struct {
	UserMessage      *domain.Message            `json:"userMessage"`
	AssistantMessage *domain.Message            `json:"assistantMessage"`
	CreatedEntities  *assistant.CreatedEntities `json:"createdEntities,omitempty"`
}

// Review requests

// SubmitReviewRequest records a review outcome for a card.
type SubmitReviewRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=again hard good easy"`
}
