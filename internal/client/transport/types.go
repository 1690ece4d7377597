package transport

import "time"

// Client-side records use plain string IDs so optimistic placeholder ids
// can flow through the same types as confirmed server records.

// AuthResult carries the token pair issued by register, login or refresh.
type AuthResult struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Deck is a flashcard deck as the server reports it.
type Deck struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckWithCards is a deck plus its full card list.
type DeckWithCards struct {
	Deck
	Cards []Card `json:"cards"`
}

// Collection is a named grouping of decks.
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DeckCount   int       `json:"deck_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionWithDecks is a collection plus its member decks.
type CollectionWithDecks struct {
	Collection
	Decks []Deck `json:"decks"`
}

// Card is a single flashcard.
type Card struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chat is a conversation with the assistant.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatWithMessages is a chat plus its message history, oldest first.
type ChatWithMessages struct {
	Chat
	Messages []Message `json:"messages"`
}

// Message is one turn in a chat.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedEntities lists everything the assistant created through tool
// calls during one exchange.
type CreatedEntities struct {
	Decks       []Deck       `json:"decks,omitempty"`
	Collections []Collection `json:"collections,omitempty"`
	Cards       []Card       `json:"cards,omitempty"`
}

// SendMessageResult is the persisted exchange returned by the message
// endpoint.
type SendMessageResult struct {
	UserMessage      Message          `json:"userMessage"`
	AssistantMessage Message          `json:"assistantMessage"`
	Created          *CreatedEntities `json:"createdEntities,omitempty"`
}

// ReviewStats is the updated scheduling state after a review submission.
type ReviewStats struct {
	UserID             string    `json:"user_id"`
	CardID             string    `json:"card_id"`
	Interval           int       `json:"interval"`
	EaseFactor         float64   `json:"ease_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	NextReviewAt       time.Time `json:"next_review_at"`
	ReviewCount        int       `json:"review_count"`
}
