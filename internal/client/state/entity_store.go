// Package state holds the client-side optimistic stores. Mutations apply
// locally first and roll back from a per-mutation pre-image when the
// server rejects them. Placeholder ids ("temp-", "loading-") are
// client-only sentinels and never reach the server.
package state

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cardstack/cardstack-api/internal/client/transport"
)

const tempIDPrefix = "temp-"

// IsTempID reports whether the id is a client-side placeholder id.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix) || strings.HasPrefix(id, loadingIDPrefix)
}

func newTempID() string {
	return fmt.Sprintf("%s%d", tempIDPrefix, time.Now().UnixNano())
}

// EntityAPI is the server surface the entity store needs.
type EntityAPI interface {
	ListDecks(ctx context.Context) ([]transport.Deck, error)
	CreateDeck(ctx context.Context, name, description string) (*transport.Deck, error)
	UpdateDeck(ctx context.Context, deckID, name, description string) (*transport.Deck, error)
	DeleteDeck(ctx context.Context, deckID string) error
	ListCollections(ctx context.Context) ([]transport.Collection, error)
	CreateCollection(ctx context.Context, name, description string) (*transport.Collection, error)
	UpdateCollection(ctx context.Context, collectionID, name, description string) (*transport.Collection, error)
	DeleteCollection(ctx context.Context, collectionID string) error
}

// EntityStore keeps the user's decks and collections with optimistic
// mutations. All methods are safe for concurrent use; racing mutations
// resolve last-write-wins, each owning its own pre-image.
type EntityStore struct {
	api EntityAPI

	mu          sync.Mutex
	decks       []transport.Deck
	collections []transport.Collection
	loading     bool
	loaded      bool

	subs   map[int]func()
	nextID int
}

// NewEntityStore creates an empty store backed by the given API.
func NewEntityStore(api EntityAPI) *EntityStore {
	return &EntityStore{api: api, subs: make(map[int]func())}
}

// Subscribe registers a change callback and returns an unsubscribe
// function. Callbacks run synchronously after every visible change.
func (s *EntityStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *EntityStore) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Decks returns a copy of the current deck list, placeholders included.
func (s *EntityStore) Decks() []transport.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transport.Deck, len(s.decks))
	copy(out, s.decks)
	return out
}

// Collections returns a copy of the current collection list.
func (s *EntityStore) Collections() []transport.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transport.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Loaded reports whether the initial fetch has completed.
func (s *EntityStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// EnsureLoaded fetches decks and collections once. Repeat calls while a
// fetch is in flight, or after one succeeded, are no-ops; callers resync
// with Refresh.
func (s *EntityStore) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	decks, err := s.api.ListDecks(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return err
	}
	collections, err := s.api.ListCollections(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.decks = decks
	s.collections = collections
	s.loading = false
	s.loaded = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// Refresh refetches both lists from the server and swaps them in
// atomically. Existing state stays visible until the fetch succeeds.
func (s *EntityStore) Refresh(ctx context.Context) error {
	decks, err := s.api.ListDecks(ctx)
	if err != nil {
		return err
	}
	collections, err := s.api.ListCollections(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.decks = decks
	s.collections = collections
	s.loaded = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// AddDeck optimistically appends a placeholder deck, then replaces it
// with the server record on success. On failure the placeholder is
// removed and nil is returned.
func (s *EntityStore) AddDeck(ctx context.Context, name, description string) *transport.Deck {
	tempID := newTempID()
	placeholder := transport.Deck{ID: tempID, Name: name, Description: description}

	s.mu.Lock()
	s.decks = append(s.decks, placeholder)
	s.mu.Unlock()
	s.notify()

	created, err := s.api.CreateDeck(ctx, name, description)
	if err != nil {
		s.mu.Lock()
		s.decks = removeDeck(s.decks, tempID)
		s.mu.Unlock()
		s.notify()
		return nil
	}

	confirmed := *created
	confirmed.CardCount = 0

	s.mu.Lock()
	for i := range s.decks {
		if s.decks[i].ID == tempID {
			s.decks[i] = confirmed
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return &confirmed
}

// UpdateDeck optimistically patches the deck in place. On failure the
// full pre-image of the record is restored and false is returned.
func (s *EntityStore) UpdateDeck(ctx context.Context, deckID, name, description string) bool {
	s.mu.Lock()
	idx := deckIndex(s.decks, deckID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.decks[idx]
	s.decks[idx].Name = name
	s.decks[idx].Description = description
	s.mu.Unlock()
	s.notify()

	if _, err := s.api.UpdateDeck(ctx, deckID, name, description); err != nil {
		s.mu.Lock()
		if i := deckIndex(s.decks, deckID); i >= 0 {
			s.decks[i] = prev
		}
		s.mu.Unlock()
		s.notify()
		return false
	}
	return true
}

// DeleteDeck optimistically removes the deck. On failure the whole
// pre-call list is restored and false is returned.
func (s *EntityStore) DeleteDeck(ctx context.Context, deckID string) bool {
	s.mu.Lock()
	snapshot := make([]transport.Deck, len(s.decks))
	copy(snapshot, s.decks)
	s.decks = removeDeck(s.decks, deckID)
	s.mu.Unlock()
	s.notify()

	if err := s.api.DeleteDeck(ctx, deckID); err != nil {
		s.mu.Lock()
		s.decks = snapshot
		s.mu.Unlock()
		s.notify()
		return false
	}
	return true
}

// AddCollection mirrors AddDeck for collections.
func (s *EntityStore) AddCollection(ctx context.Context, name, description string) *transport.Collection {
	tempID := newTempID()
	placeholder := transport.Collection{ID: tempID, Name: name, Description: description}

	s.mu.Lock()
	s.collections = append(s.collections, placeholder)
	s.mu.Unlock()
	s.notify()

	created, err := s.api.CreateCollection(ctx, name, description)
	if err != nil {
		s.mu.Lock()
		s.collections = removeCollection(s.collections, tempID)
		s.mu.Unlock()
		s.notify()
		return nil
	}

	confirmed := *created
	confirmed.DeckCount = 0

	s.mu.Lock()
	for i := range s.collections {
		if s.collections[i].ID == tempID {
			s.collections[i] = confirmed
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return &confirmed
}

// UpdateCollection mirrors UpdateDeck for collections.
func (s *EntityStore) UpdateCollection(ctx context.Context, collectionID, name, description string) bool {
	s.mu.Lock()
	idx := collectionIndex(s.collections, collectionID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.collections[idx]
	s.collections[idx].Name = name
	s.collections[idx].Description = description
	s.mu.Unlock()
	s.notify()

	if _, err := s.api.UpdateCollection(ctx, collectionID, name, description); err != nil {
		s.mu.Lock()
		if i := collectionIndex(s.collections, collectionID); i >= 0 {
			s.collections[i] = prev
		}
		s.mu.Unlock()
		s.notify()
		return false
	}
	return true
}

// DeleteCollection mirrors DeleteDeck for collections.
func (s *EntityStore) DeleteCollection(ctx context.Context, collectionID string) bool {
	s.mu.Lock()
	snapshot := make([]transport.Collection, len(s.collections))
	copy(snapshot, s.collections)
	s.collections = removeCollection(s.collections, collectionID)
	s.mu.Unlock()
	s.notify()

	if err := s.api.DeleteCollection(ctx, collectionID); err != nil {
		s.mu.Lock()
		s.collections = snapshot
		s.mu.Unlock()
		s.notify()
		return false
	}
	return true
}

// IncrementDeckCardCount bumps a deck's card count locally. No server
// call is made; the server maintains the authoritative count itself.
func (s *EntityStore) IncrementDeckCardCount(deckID string) {
	s.adjustDeckCardCount(deckID, 1)
}

// DecrementDeckCardCount lowers a deck's card count locally, flooring
// at zero.
func (s *EntityStore) DecrementDeckCardCount(deckID string) {
	s.adjustDeckCardCount(deckID, -1)
}

func (s *EntityStore) adjustDeckCardCount(deckID string, delta int) {
	s.mu.Lock()
	idx := deckIndex(s.decks, deckID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := s.decks[idx].CardCount + delta
	if next < 0 {
		next = 0
	}
	s.decks[idx].CardCount = next
	s.mu.Unlock()
	s.notify()
}

// IncrementCollectionDeckCount bumps a collection's deck count locally.
func (s *EntityStore) IncrementCollectionDeckCount(collectionID string) {
	s.adjustCollectionDeckCount(collectionID, 1)
}

// DecrementCollectionDeckCount lowers a collection's deck count locally,
// flooring at zero.
func (s *EntityStore) DecrementCollectionDeckCount(collectionID string) {
	s.adjustCollectionDeckCount(collectionID, -1)
}

func (s *EntityStore) adjustCollectionDeckCount(collectionID string, delta int) {
	s.mu.Lock()
	idx := collectionIndex(s.collections, collectionID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := s.collections[idx].DeckCount + delta
	if next < 0 {
		next = 0
	}
	s.collections[idx].DeckCount = next
	s.mu.Unlock()
	s.notify()
}

// Reset clears all state, returning the store to its pre-load condition.
func (s *EntityStore) Reset() {
	s.mu.Lock()
	s.decks = nil
	s.collections = nil
	s.loading = false
	s.loaded = false
	s.mu.Unlock()
	s.notify()
}

// DeckCreated, CollectionCreated and CardCreated let the chat store feed
// assistant-created entities in without a refetch.

func (s *EntityStore) DeckCreated(deck transport.Deck) {
	s.mu.Lock()
	s.decks = append(s.decks, deck)
	s.mu.Unlock()
	s.notify()
}

func (s *EntityStore) CollectionCreated(collection transport.Collection) {
	s.mu.Lock()
	s.collections = append(s.collections, collection)
	s.mu.Unlock()
	s.notify()
}

func (s *EntityStore) CardCreated(card transport.Card) {
	s.adjustDeckCardCount(card.DeckID, 1)
}

func deckIndex(decks []transport.Deck, id string) int {
	for i := range decks {
		if decks[i].ID == id {
			return i
		}
	}
	return -1
}

func removeDeck(decks []transport.Deck, id string) []transport.Deck {
	out := decks[:0]
	for _, d := range decks {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

func collectionIndex(collections []transport.Collection, id string) int {
	for i := range collections {
		if collections[i].ID == id {
			return i
		}
	}
	return -1
}

func removeCollection(collections []transport.Collection, id string) []transport.Collection {
	out := collections[:0]
	for _, c := range collections {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
