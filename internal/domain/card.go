package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card validation errors
var (
	ErrEmptyCardID     = errors.New("card ID cannot be empty")
	ErrEmptyCardUserID = errors.New("card user ID cannot be empty")
	ErrEmptyCardDeckID = errors.New("card deck ID cannot be empty")
	ErrEmptyCardFront  = errors.New("card front cannot be empty")
	ErrEmptyCardBack   = errors.New("card back cannot be empty")
)

// Card is a flashcard owned by exactly one deck.
type Card struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck.
func NewCard(userID, deckID uuid.UUID, front, back string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCardID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCardUserID
	}

	if c.DeckID == uuid.Nil {
		return ErrEmptyCardDeckID
	}

	if c.Front == "" {
		return ErrEmptyCardFront
	}

	if c.Back == "" {
		return ErrEmptyCardBack
	}

	return nil
}

// UpdateSides replaces the card's front and back text, bumping UpdatedAt.
func (c *Card) UpdateSides(front, back string) error {
	origFront, origBack := c.Front, c.Back
	c.Front, c.Back = front, back

	if err := c.Validate(); err != nil {
		c.Front, c.Back = origFront, origBack
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
