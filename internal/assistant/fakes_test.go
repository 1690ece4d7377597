package assistant

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

// memData is a shared in-memory dataset backing the fake stores.
type memData struct {
	decks       map[uuid.UUID]*domain.Deck
	collections map[uuid.UUID]*domain.Collection
	cards       map[uuid.UUID]*domain.Card
	links       map[uuid.UUID]map[uuid.UUID]bool // collection -> deck set
}

func newMemData() *memData {
	return &memData{
		decks:       make(map[uuid.UUID]*domain.Deck),
		collections: make(map[uuid.UUID]*domain.Collection),
		cards:       make(map[uuid.UUID]*domain.Card),
		links:       make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (d *memData) cardCount(deckID uuid.UUID) int {
	n := 0
	for _, card := range d.cards {
		if card.DeckID == deckID {
			n++
		}
	}
	return n
}

func (d *memData) deckCopy(deck *domain.Deck) *domain.Deck {
	cp := *deck
	cp.CardCount = d.cardCount(deck.ID)
	return &cp
}

func (d *memData) collectionCopy(collection *domain.Collection) *domain.Collection {
	cp := *collection
	cp.DeckCount = len(d.links[collection.ID])
	return &cp
}

// noopTx satisfies the txRunner signature without a real database.
func noopTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

type memDeckStore struct{ data *memData }

var _ store.DeckStore = (*memDeckStore)(nil)

func (s *memDeckStore) Create(_ context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}
	s.data.decks[deck.ID] = deck
	return nil
}

func (s *memDeckStore) GetByID(_ context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, ok := s.data.decks[deckID]
	if !ok || deck.UserID != userID {
		return nil, store.ErrDeckNotFound
	}
	return s.data.deckCopy(deck), nil
}

func (s *memDeckStore) GetWithCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.Deck, []domain.Card, error) {
	deck, err := s.GetByID(ctx, userID, deckID)
	if err != nil {
		return nil, nil, err
	}
	cards := []domain.Card{}
	for _, card := range s.data.cards {
		if card.DeckID == deckID {
			cards = append(cards, *card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Front < cards[j].Front })
	return deck, cards, nil
}

func (s *memDeckStore) List(_ context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks := []*domain.Deck{}
	for _, deck := range s.data.decks {
		if deck.UserID == userID {
			decks = append(decks, s.data.deckCopy(deck))
		}
	}
	sort.Slice(decks, func(i, j int) bool { return decks[i].Name < decks[j].Name })
	return decks, nil
}

func (s *memDeckStore) Update(_ context.Context, deck *domain.Deck) error {
	existing, ok := s.data.decks[deck.ID]
	if !ok || existing.UserID != deck.UserID {
		return store.ErrDeckNotFound
	}
	s.data.decks[deck.ID] = deck
	return nil
}

func (s *memDeckStore) Delete(_ context.Context, userID, deckID uuid.UUID) error {
	deck, ok := s.data.decks[deckID]
	if !ok || deck.UserID != userID {
		return store.ErrDeckNotFound
	}
	delete(s.data.decks, deckID)
	return nil
}

func (s *memDeckStore) WithTx(*sql.Tx) store.DeckStore { return s }

type memCollectionStore struct{ data *memData }

var _ store.CollectionStore = (*memCollectionStore)(nil)

func (s *memCollectionStore) Create(_ context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return err
	}
	s.data.collections[collection.ID] = collection
	return nil
}

func (s *memCollectionStore) GetByID(
	_ context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	collection, ok := s.data.collections[collectionID]
	if !ok || collection.UserID != userID {
		return nil, store.ErrCollectionNotFound
	}
	return s.data.collectionCopy(collection), nil
}

func (s *memCollectionStore) GetWithDecks(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, []domain.Deck, error) {
	collection, err := s.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, nil, err
	}
	decks := []domain.Deck{}
	for deckID := range s.data.links[collectionID] {
		if deck, ok := s.data.decks[deckID]; ok {
			decks = append(decks, *s.data.deckCopy(deck))
		}
	}
	sort.Slice(decks, func(i, j int) bool { return decks[i].Name < decks[j].Name })
	return collection, decks, nil
}

func (s *memCollectionStore) List(
	_ context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	collections := []*domain.Collection{}
	for _, collection := range s.data.collections {
		if collection.UserID == userID {
			collections = append(collections, s.data.collectionCopy(collection))
		}
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return collections, nil
}

func (s *memCollectionStore) Update(_ context.Context, collection *domain.Collection) error {
	existing, ok := s.data.collections[collection.ID]
	if !ok || existing.UserID != collection.UserID {
		return store.ErrCollectionNotFound
	}
	s.data.collections[collection.ID] = collection
	return nil
}

func (s *memCollectionStore) Delete(_ context.Context, userID, collectionID uuid.UUID) error {
	collection, ok := s.data.collections[collectionID]
	if !ok || collection.UserID != userID {
		return store.ErrCollectionNotFound
	}
	delete(s.data.collections, collectionID)
	delete(s.data.links, collectionID)
	return nil
}

func (s *memCollectionStore) AddDeck(
	_ context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	collection, ok := s.data.collections[collectionID]
	if !ok || collection.UserID != userID {
		return store.ErrCollectionNotFound
	}
	deck, ok := s.data.decks[deckID]
	if !ok || deck.UserID != userID {
		return store.ErrDeckNotFound
	}
	if s.data.links[collectionID] == nil {
		s.data.links[collectionID] = make(map[uuid.UUID]bool)
	}
	if s.data.links[collectionID][deckID] {
		return store.ErrDeckAlreadyInCollection
	}
	s.data.links[collectionID][deckID] = true
	return nil
}

func (s *memCollectionStore) RemoveDeck(
	_ context.Context,
	userID, collectionID, deckID uuid.UUID,
) error {
	collection, ok := s.data.collections[collectionID]
	if !ok || collection.UserID != userID {
		return store.ErrCollectionNotFound
	}
	if !s.data.links[collectionID][deckID] {
		return store.ErrDeckNotFound
	}
	delete(s.data.links[collectionID], deckID)
	return nil
}

func (s *memCollectionStore) WithTx(*sql.Tx) store.CollectionStore { return s }

type memCardStore struct{ data *memData }

var _ store.CardStore = (*memCardStore)(nil)

func (s *memCardStore) Create(_ context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	deck, ok := s.data.decks[card.DeckID]
	if !ok || deck.UserID != card.UserID {
		return store.ErrDeckNotFound
	}
	s.data.cards[card.ID] = card
	return nil
}

func (s *memCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	inserted := []uuid.UUID{}
	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			for _, id := range inserted {
				delete(s.data.cards, id)
			}
			return err
		}
		inserted = append(inserted, card.ID)
	}
	return nil
}

func (s *memCardStore) GetByID(
	_ context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, ok := s.data.cards[cardID]
	if !ok || card.UserID != userID {
		return nil, store.ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}

func (s *memCardStore) Update(_ context.Context, card *domain.Card) error {
	existing, ok := s.data.cards[card.ID]
	if !ok || existing.UserID != card.UserID {
		return store.ErrCardNotFound
	}
	s.data.cards[card.ID] = card
	return nil
}

func (s *memCardStore) Delete(_ context.Context, userID, cardID uuid.UUID) error {
	card, ok := s.data.cards[cardID]
	if !ok || card.UserID != userID {
		return store.ErrCardNotFound
	}
	delete(s.data.cards, cardID)
	return nil
}

func (s *memCardStore) ListRandomized(
	_ context.Context,
	userID, deckID uuid.UUID,
) ([]domain.Card, error) {
	deck, ok := s.data.decks[deckID]
	if !ok || deck.UserID != userID {
		return nil, store.ErrDeckNotFound
	}
	cards := []domain.Card{}
	for _, card := range s.data.cards {
		if card.DeckID == deckID {
			cards = append(cards, *card)
		}
	}
	return cards, nil
}

func (s *memCardStore) WithTx(*sql.Tx) store.CardStore { return s }
