package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/store"
)

// CreatedEntities collects the records tool calls created during one
// assistant turn, so the API response can hand them to the client store
// without a refetch.
type CreatedEntities struct {
	Decks       []*domain.Deck       `json:"decks,omitempty"`
	Collections []*domain.Collection `json:"collections,omitempty"`
	Cards       []*domain.Card       `json:"cards,omitempty"`
}

// IsEmpty reports whether no entities were created.
func (c *CreatedEntities) IsEmpty() bool {
	return len(c.Decks) == 0 && len(c.Collections) == 0 && len(c.Cards) == 0
}

// deckSummary is the shape tools report decks in.
type deckSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardCount   int       `json:"card_count"`
}

type collectionSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DeckCount   int       `json:"deck_count"`
}

type cardSummary struct {
	ID    uuid.UUID `json:"id"`
	Front string    `json:"front"`
	Back  string    `json:"back"`
}

func summarizeDeck(deck *domain.Deck) deckSummary {
	return deckSummary{
		ID:          deck.ID,
		Name:        deck.Name,
		Description: deck.Description,
		CardCount:   deck.CardCount,
	}
}

func summarizeCollection(collection *domain.Collection) collectionSummary {
	return collectionSummary{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		DeckCount:   collection.DeckCount,
	}
}

func summarizeCard(card *domain.Card) cardSummary {
	return cardSummary{ID: card.ID, Front: card.Front, Back: card.Back}
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(data), nil
}

// txRunner runs a function inside a database transaction.
type txRunner func(ctx context.Context, fn store.TxFn) error

// toolset binds the fixed set of thirteen tools to one user's data.
// There are deliberately no delete tools.
type toolset struct {
	userID          uuid.UUID
	runInTx         txRunner
	deckStore       store.DeckStore
	collectionStore store.CollectionStore
	cardStore       store.CardStore
	created         *CreatedEntities
}

func newToolset(
	userID uuid.UUID,
	runInTx txRunner,
	deckStore store.DeckStore,
	collectionStore store.CollectionStore,
	cardStore store.CardStore,
) *toolset {
	return &toolset{
		userID:          userID,
		runInTx:         runInTx,
		deckStore:       deckStore,
		collectionStore: collectionStore,
		cardStore:       cardStore,
		created:         &CreatedEntities{},
	}
}

// tools returns the full tool list in a stable order.
func (t *toolset) tools() []*Tool {
	nameParam := &genai.Schema{
		Type:        genai.TypeString,
		Description: "Display name.",
	}
	descriptionParam := &genai.Schema{
		Type:        genai.TypeString,
		Description: "Optional longer description.",
	}

	return []*Tool{
		{
			Name:        "list_collections",
			Description: "List all of the user's collections with their deck counts.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Handler: t.listCollections,
		},
		{
			Name:        "view_collection",
			Description: "View one collection and the decks inside it.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"collection_id": {Type: genai.TypeString, Description: "Collection id."},
				},
				Required: []string{"collection_id"},
			},
			Handler: t.viewCollection,
		},
		{
			Name:        "create_collection",
			Description: "Create a new, empty collection.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        nameParam,
					"description": descriptionParam,
				},
				Required: []string{"name"},
			},
			Handler: t.createCollection,
		},
		{
			Name:        "update_collection",
			Description: "Rename a collection or change its description.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"collection_id": {Type: genai.TypeString, Description: "Collection id."},
					"name":          nameParam,
					"description":   descriptionParam,
				},
				Required: []string{"collection_id", "name"},
			},
			Handler: t.updateCollection,
		},
		{
			Name:        "list_decks",
			Description: "List all of the user's decks with their card counts.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Handler: t.listDecks,
		},
		{
			Name:        "view_deck",
			Description: "View one deck and every flashcard in it.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"deck_id": {Type: genai.TypeString, Description: "Deck id."},
				},
				Required: []string{"deck_id"},
			},
			Handler: t.viewDeck,
		},
		{
			Name:        "create_deck",
			Description: "Create a new, empty flashcard deck.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        nameParam,
					"description": descriptionParam,
				},
				Required: []string{"name"},
			},
			Handler: t.createDeck,
		},
		{
			Name:        "update_deck",
			Description: "Rename a deck or change its description.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"deck_id":     {Type: genai.TypeString, Description: "Deck id."},
					"name":        nameParam,
					"description": descriptionParam,
				},
				Required: []string{"deck_id", "name"},
			},
			Handler: t.updateDeck,
		},
		{
			Name:        "add_deck_to_collection",
			Description: "Add an existing deck to a collection.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"collection_id": {Type: genai.TypeString, Description: "Collection id."},
					"deck_id":       {Type: genai.TypeString, Description: "Deck id."},
				},
				Required: []string{"collection_id", "deck_id"},
			},
			Handler: t.addDeckToCollection,
		},
		{
			Name:        "remove_deck_from_collection",
			Description: "Remove a deck from a collection without deleting the deck.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"collection_id": {Type: genai.TypeString, Description: "Collection id."},
					"deck_id":       {Type: genai.TypeString, Description: "Deck id."},
				},
				Required: []string{"collection_id", "deck_id"},
			},
			Handler: t.removeDeckFromCollection,
		},
		{
			Name:        "create_flashcard",
			Description: "Create a single flashcard in a deck. For two or more cards, use create_flashcards instead.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"deck_id": {Type: genai.TypeString, Description: "Deck id."},
					"front":   {Type: genai.TypeString, Description: "Front (question) text."},
					"back":    {Type: genai.TypeString, Description: "Back (answer) text."},
				},
				Required: []string{"deck_id", "front", "back"},
			},
			Handler: t.createFlashcard,
		},
		{
			Name:        "update_flashcard",
			Description: "Replace the front and back text of a flashcard.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"card_id": {Type: genai.TypeString, Description: "Card id."},
					"front":   {Type: genai.TypeString, Description: "New front text."},
					"back":    {Type: genai.TypeString, Description: "New back text."},
				},
				Required: []string{"card_id", "front", "back"},
			},
			Handler: t.updateFlashcard,
		},
		{
			Name:        "create_flashcards",
			Description: "Create several flashcards in a deck at once. Requires at least two cards; all are inserted or none.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"deck_id": {Type: genai.TypeString, Description: "Deck id."},
					"cards": {
						Type:        genai.TypeArray,
						Description: "Cards to create.",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"front": {Type: genai.TypeString, Description: "Front (question) text."},
								"back":  {Type: genai.TypeString, Description: "Back (answer) text."},
							},
							Required: []string{"front", "back"},
						},
					},
				},
				Required: []string{"deck_id", "cards"},
			},
			Handler: t.createFlashcards,
		},
	}
}

func (t *toolset) listCollections(ctx context.Context, _ map[string]any) (string, error) {
	collections, err := t.collectionStore.List(ctx, t.userID)
	if err != nil {
		return "", err
	}

	summaries := make([]collectionSummary, 0, len(collections))
	for _, collection := range collections {
		summaries = append(summaries, summarizeCollection(collection))
	}
	return toJSON(summaries)
}

func (t *toolset) viewCollection(ctx context.Context, args map[string]any) (string, error) {
	collectionID, err := uuidArg(args, "collection_id")
	if err != nil {
		return "", err
	}

	collection, decks, err := t.collectionStore.GetWithDecks(ctx, t.userID, collectionID)
	if err != nil {
		return "", err
	}

	deckSummaries := make([]deckSummary, 0, len(decks))
	for i := range decks {
		deckSummaries = append(deckSummaries, summarizeDeck(&decks[i]))
	}

	return toJSON(struct {
		collectionSummary
		Decks []deckSummary `json:"decks"`
	}{summarizeCollection(collection), deckSummaries})
}

func (t *toolset) createCollection(ctx context.Context, args map[string]any) (string, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}

	collection, err := domain.NewCollection(t.userID, name, optionalStringArg(args, "description"))
	if err != nil {
		return "", err
	}

	if err := t.collectionStore.Create(ctx, collection); err != nil {
		return "", err
	}

	t.created.Collections = append(t.created.Collections, collection)
	return toJSON(summarizeCollection(collection))
}

func (t *toolset) updateCollection(ctx context.Context, args map[string]any) (string, error) {
	collectionID, err := uuidArg(args, "collection_id")
	if err != nil {
		return "", err
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}

	collection, err := t.collectionStore.GetByID(ctx, t.userID, collectionID)
	if err != nil {
		return "", err
	}

	description := collection.Description
	if raw, ok := args["description"].(string); ok {
		description = raw
	}
	if err := collection.Rename(name, description); err != nil {
		return "", err
	}

	if err := t.collectionStore.Update(ctx, collection); err != nil {
		return "", err
	}

	return toJSON(summarizeCollection(collection))
}

func (t *toolset) listDecks(ctx context.Context, _ map[string]any) (string, error) {
	decks, err := t.deckStore.List(ctx, t.userID)
	if err != nil {
		return "", err
	}

	summaries := make([]deckSummary, 0, len(decks))
	for _, deck := range decks {
		summaries = append(summaries, summarizeDeck(deck))
	}
	return toJSON(summaries)
}

func (t *toolset) viewDeck(ctx context.Context, args map[string]any) (string, error) {
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}

	deck, cards, err := t.deckStore.GetWithCards(ctx, t.userID, deckID)
	if err != nil {
		return "", err
	}

	cardSummaries := make([]cardSummary, 0, len(cards))
	for i := range cards {
		cardSummaries = append(cardSummaries, summarizeCard(&cards[i]))
	}

	return toJSON(struct {
		deckSummary
		Cards []cardSummary `json:"cards"`
	}{summarizeDeck(deck), cardSummaries})
}

func (t *toolset) createDeck(ctx context.Context, args map[string]any) (string, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}

	deck, err := domain.NewDeck(t.userID, name, optionalStringArg(args, "description"))
	if err != nil {
		return "", err
	}

	if err := t.deckStore.Create(ctx, deck); err != nil {
		return "", err
	}

	t.created.Decks = append(t.created.Decks, deck)
	return toJSON(summarizeDeck(deck))
}

func (t *toolset) updateDeck(ctx context.Context, args map[string]any) (string, error) {
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}

	deck, err := t.deckStore.GetByID(ctx, t.userID, deckID)
	if err != nil {
		return "", err
	}

	description := deck.Description
	if raw, ok := args["description"].(string); ok {
		description = raw
	}
	if err := deck.Rename(name, description); err != nil {
		return "", err
	}

	if err := t.deckStore.Update(ctx, deck); err != nil {
		return "", err
	}

	return toJSON(summarizeDeck(deck))
}

func (t *toolset) addDeckToCollection(ctx context.Context, args map[string]any) (string, error) {
	collectionID, err := uuidArg(args, "collection_id")
	if err != nil {
		return "", err
	}
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}

	if err := t.collectionStore.AddDeck(ctx, t.userID, collectionID, deckID); err != nil {
		return "", err
	}

	return fmt.Sprintf("Added deck %s to collection %s.", deckID, collectionID), nil
}

func (t *toolset) removeDeckFromCollection(
	ctx context.Context,
	args map[string]any,
) (string, error) {
	collectionID, err := uuidArg(args, "collection_id")
	if err != nil {
		return "", err
	}
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}

	if err := t.collectionStore.RemoveDeck(ctx, t.userID, collectionID, deckID); err != nil {
		return "", err
	}

	return fmt.Sprintf("Removed deck %s from collection %s.", deckID, collectionID), nil
}

func (t *toolset) createFlashcard(ctx context.Context, args map[string]any) (string, error) {
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}
	front, err := stringArg(args, "front")
	if err != nil {
		return "", err
	}
	back, err := stringArg(args, "back")
	if err != nil {
		return "", err
	}

	card, err := domain.NewCard(t.userID, deckID, front, back)
	if err != nil {
		return "", err
	}

	if err := t.cardStore.Create(ctx, card); err != nil {
		return "", err
	}

	t.created.Cards = append(t.created.Cards, card)
	return toJSON(summarizeCard(card))
}

func (t *toolset) updateFlashcard(ctx context.Context, args map[string]any) (string, error) {
	cardID, err := uuidArg(args, "card_id")
	if err != nil {
		return "", err
	}
	front, err := stringArg(args, "front")
	if err != nil {
		return "", err
	}
	back, err := stringArg(args, "back")
	if err != nil {
		return "", err
	}

	card, err := t.cardStore.GetByID(ctx, t.userID, cardID)
	if err != nil {
		return "", err
	}

	if err := card.UpdateSides(front, back); err != nil {
		return "", err
	}

	if err := t.cardStore.Update(ctx, card); err != nil {
		return "", err
	}

	return toJSON(summarizeCard(card))
}

func (t *toolset) createFlashcards(ctx context.Context, args map[string]any) (string, error) {
	deckID, err := uuidArg(args, "deck_id")
	if err != nil {
		return "", err
	}

	rawCards, ok := args["cards"].([]any)
	if !ok {
		return "", fmt.Errorf("missing or invalid argument %q", "cards")
	}
	if len(rawCards) < 2 {
		return "", fmt.Errorf(
			"create_flashcards requires at least 2 cards, got %d; use create_flashcard for a single card",
			len(rawCards),
		)
	}

	// Validate every entry before inserting anything.
	cards := make([]*domain.Card, 0, len(rawCards))
	for i, raw := range rawCards {
		entry, ok := raw.(map[string]any)
		if !ok {
			return "", fmt.Errorf("card %d is not an object", i+1)
		}
		front := optionalStringArg(entry, "front")
		back := optionalStringArg(entry, "back")
		if front == "" || back == "" {
			return "", fmt.Errorf("card %d has an empty front or back; no cards were created", i+1)
		}

		card, err := domain.NewCard(t.userID, deckID, front, back)
		if err != nil {
			return "", err
		}
		cards = append(cards, card)
	}

	err = t.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return t.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		return "", err
	}

	t.created.Cards = append(t.created.Cards, cards...)

	summaries := make([]cardSummary, 0, len(cards))
	for _, card := range cards {
		summaries = append(summaries, summarizeCard(card))
	}
	return toJSON(summaries)
}
