package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection validation errors
var (
	ErrEmptyCollectionID     = errors.New("collection ID cannot be empty")
	ErrEmptyCollectionUserID = errors.New("collection user ID cannot be empty")
	ErrEmptyCollectionName   = errors.New("collection name cannot be empty")
	ErrCollectionNameTooLong = errors.New("collection name must be at most 100 characters")
)

// Collection groups decks many-to-many; the join rows live server-side in
// the collection_decks table. DeckCount is a denormalized aggregate.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DeckCount   int       `json:"deck_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCollection creates a new Collection for the given user.
func NewCollection(userID uuid.UUID, name, description string) (*Collection, error) {
	now := time.Now().UTC()
	collection := &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		DeckCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCollectionID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCollectionUserID
	}

	if c.Name == "" {
		return ErrEmptyCollectionName
	}

	if len(c.Name) > maxNameLength {
		return ErrCollectionNameTooLong
	}

	return nil
}

// Rename updates the collection's name and description, bumping UpdatedAt.
func (c *Collection) Rename(name, description string) error {
	origName, origDesc := c.Name, c.Description
	c.Name, c.Description = name, description

	if err := c.Validate(); err != nil {
		c.Name, c.Description = origName, origDesc
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
