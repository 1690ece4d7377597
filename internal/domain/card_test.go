package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	deckID := uuid.New()

	card, err := NewCard(userID, deckID, "What is Go?", "A programming language")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, card.UserID)
	}

	if card.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, card.DeckID)
	}

	_, err = NewCard(uuid.Nil, deckID, "front", "back")
	if err != ErrEmptyCardUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardUserID, err)
	}

	_, err = NewCard(userID, uuid.Nil, "front", "back")
	if err != ErrEmptyCardDeckID {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardDeckID, err)
	}

	_, err = NewCard(userID, deckID, "", "back")
	if err != ErrEmptyCardFront {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardFront, err)
	}

	_, err = NewCard(userID, deckID, "front", "")
	if err != ErrEmptyCardBack {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardBack, err)
	}
}

func TestCardUpdateSides(t *testing.T) {
	t.Parallel()
	card, err := NewCard(uuid.New(), uuid.New(), "front", "back")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := card.UpdateSides("new front", "new back"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.Front != "new front" || card.Back != "new back" {
		t.Errorf("UpdateSides did not apply: %q / %q", card.Front, card.Back)
	}

	// Failed update restores the original sides.
	if err := card.UpdateSides("", "anything"); err != ErrEmptyCardFront {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardFront, err)
	}

	if card.Front != "new front" || card.Back != "new back" {
		t.Error("Failed update must not mutate the card")
	}
}
