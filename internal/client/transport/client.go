// Package transport provides a typed HTTP client for the CardStack REST
// API. It handles bearer token auth, JSON codecs and error decoding; the
// optimistic store layer in internal/client/state builds on top of it.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a CardStack server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request. A non-nil body is JSON-encoded; a non-nil out
// receives the decoded JSON response. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	// Body decode failures leave the message empty; the status code alone
	// is still meaningful to callers.
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
}

// Auth

// Register creates an account and stores the issued access token on the
// client.
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.SetToken(result.AccessToken)
	return &result, nil
}

// Login authenticates and stores the issued access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.SetToken(result.AccessToken)
	return &result, nil
}

// Refresh exchanges a refresh token for a new pair and stores the new
// access token on the client.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refresh_token": refreshToken}, &result)
	if err != nil {
		return nil, err
	}
	c.SetToken(result.AccessToken)
	return &result, nil
}

// Decks

func (c *Client) ListDecks(ctx context.Context) ([]Deck, error) {
	var decks []Deck
	if err := c.do(ctx, http.MethodGet, "/api/decks", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (c *Client) CreateDeck(ctx context.Context, name, description string) (*Deck, error) {
	var deck Deck
	err := c.do(ctx, http.MethodPost, "/api/decks",
		map[string]string{"name": name, "description": description}, &deck)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (c *Client) GetDeck(ctx context.Context, deckID string) (*DeckWithCards, error) {
	var deck DeckWithCards
	if err := c.do(ctx, http.MethodGet, "/api/decks/"+deckID, nil, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (c *Client) UpdateDeck(ctx context.Context, deckID, name, description string) (*Deck, error) {
	var deck Deck
	err := c.do(ctx, http.MethodPut, "/api/decks/"+deckID,
		map[string]string{"name": name, "description": description}, &deck)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (c *Client) DeleteDeck(ctx context.Context, deckID string) error {
	return c.do(ctx, http.MethodDelete, "/api/decks/"+deckID, nil, nil)
}

func (c *Client) AddCard(ctx context.Context, deckID, front, back string) (*Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPost, "/api/decks/"+deckID+"/cards",
		map[string]string{"front": front, "back": back}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CardSide is one front/back pair for bulk import.
type CardSide struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func (c *Client) ImportCards(ctx context.Context, deckID string, cards []CardSide) ([]Card, error) {
	var created []Card
	err := c.do(ctx, http.MethodPost, "/api/decks/"+deckID+"/import",
		map[string]any{"cards": cards}, &created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Collections

func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var collections []Collection
	if err := c.do(ctx, http.MethodGet, "/api/collections", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (c *Client) CreateCollection(ctx context.Context, name, description string) (*Collection, error) {
	var collection Collection
	err := c.do(ctx, http.MethodPost, "/api/collections",
		map[string]string{"name": name, "description": description}, &collection)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) GetCollection(ctx context.Context, collectionID string) (*CollectionWithDecks, error) {
	var collection CollectionWithDecks
	err := c.do(ctx, http.MethodGet, "/api/collections/"+collectionID, nil, &collection)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) UpdateCollection(
	ctx context.Context,
	collectionID, name, description string,
) (*Collection, error) {
	var collection Collection
	err := c.do(ctx, http.MethodPut, "/api/collections/"+collectionID,
		map[string]string{"name": name, "description": description}, &collection)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/collections/"+collectionID, nil, nil)
}

func (c *Client) AddDeckToCollection(ctx context.Context, collectionID, deckID string) error {
	return c.do(ctx, http.MethodPost, "/api/collections/"+collectionID+"/decks",
		map[string]string{"deck_id": deckID}, nil)
}

func (c *Client) RemoveDeckFromCollection(ctx context.Context, collectionID, deckID string) error {
	return c.do(ctx, http.MethodDelete,
		"/api/collections/"+collectionID+"/decks/"+deckID, nil, nil)
}

// Cards

func (c *Client) GetCard(ctx context.Context, cardID string) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodGet, "/api/cards/"+cardID, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, cardID, front, back string) (*Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPut, "/api/cards/"+cardID,
		map[string]string{"front": front, "back": back}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cards/"+cardID, nil, nil)
}

// Review

func (c *Client) ReviewQueue(ctx context.Context, deckID string) ([]Card, error) {
	var cards []Card
	err := c.do(ctx, http.MethodGet, "/api/decks/"+deckID+"/review", nil, &cards)
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) SubmitReview(ctx context.Context, cardID, outcome string) (*ReviewStats, error) {
	var stats ReviewStats
	err := c.do(ctx, http.MethodPost, "/api/cards/"+cardID+"/review",
		map[string]string{"outcome": outcome}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Chat

func (c *Client) ListChats(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	if err := c.do(ctx, http.MethodGet, "/api/chat", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (c *Client) CreateChat(ctx context.Context, title string) (*Chat, error) {
	var chat Chat
	err := c.do(ctx, http.MethodPost, "/api/chat",
		map[string]string{"title": title}, &chat)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (c *Client) GetChat(ctx context.Context, chatID string) (*ChatWithMessages, error) {
	var chat ChatWithMessages
	if err := c.do(ctx, http.MethodGet, "/api/chat/"+chatID, nil, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (c *Client) RenameChat(ctx context.Context, chatID, title string) error {
	return c.do(ctx, http.MethodPut, "/api/chat/"+chatID,
		map[string]string{"title": title}, nil)
}

func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/"+chatID, nil, nil)
}

func (c *Client) SendMessage(ctx context.Context, chatID, content string) (*SendMessageResult, error) {
	var result SendMessageResult
	err := c.do(ctx, http.MethodPost, "/api/chat/"+chatID+"/messages",
		map[string]string{"content": content}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
