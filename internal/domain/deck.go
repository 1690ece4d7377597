package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck validation errors
var (
	ErrEmptyDeckID     = errors.New("deck ID cannot be empty")
	ErrEmptyDeckUserID = errors.New("deck user ID cannot be empty")
	ErrEmptyDeckName   = errors.New("deck name cannot be empty")
	ErrDeckNameTooLong = errors.New("deck name must be at most 100 characters")
)

// maxNameLength bounds deck and collection names.
const maxNameLength = 100

// Deck is a named set of flashcards owned by a single user.
// CardCount is a denormalized aggregate maintained by the store layer;
// newly created decks always start at zero.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck for the given user.
func NewDeck(userID uuid.UUID, name, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CardCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDeckID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDeckUserID
	}

	if d.Name == "" {
		return ErrEmptyDeckName
	}

	if len(d.Name) > maxNameLength {
		return ErrDeckNameTooLong
	}

	return nil
}

// Rename updates the deck's name and description, bumping UpdatedAt.
func (d *Deck) Rename(name, description string) error {
	origName, origDesc := d.Name, d.Description
	d.Name, d.Description = name, description

	if err := d.Validate(); err != nil {
		d.Name, d.Description = origName, origDesc
		return err
	}

	d.UpdatedAt = time.Now().UTC()
	return nil
}
