package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cardstack/cardstack-api/internal/api/middleware"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Deck       *DeckHandler
	Collection *CollectionHandler
	Card       *CardHandler
	Chat       *ChatHandler
	Review     *ReviewHandler
}

// NewRouter builds the full API router: standard chi middleware, trace IDs,
// public auth endpoints, and the authenticated application routes.
func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/decks", h.Deck.List)
			r.Post("/decks", h.Deck.Create)
			r.Get("/decks/{id}", h.Deck.Get)
			r.Put("/decks/{id}", h.Deck.Update)
			r.Delete("/decks/{id}", h.Deck.Delete)
			r.Post("/decks/{id}/cards", h.Deck.AddCard)
			r.Post("/decks/{id}/import", h.Deck.ImportCards)
			r.Get("/decks/{id}/review", h.Review.Queue)

			r.Get("/collections", h.Collection.List)
			r.Post("/collections", h.Collection.Create)
			r.Get("/collections/{id}", h.Collection.Get)
			r.Put("/collections/{id}", h.Collection.Update)
			r.Delete("/collections/{id}", h.Collection.Delete)
			r.Post("/collections/{id}/decks", h.Collection.AddDeck)
			r.Delete("/collections/{id}/decks/{deckID}", h.Collection.RemoveDeck)

			r.Get("/cards/{id}", h.Card.Get)
			r.Put("/cards/{id}", h.Card.Update)
			r.Delete("/cards/{id}", h.Card.Delete)
			r.Post("/cards/{id}/review", h.Review.Submit)

			r.Get("/chat", h.Chat.List)
			r.Post("/chat", h.Chat.Create)
			r.Get("/chat/{id}", h.Chat.Get)
			r.Put("/chat/{id}", h.Chat.Rename)
			r.Delete("/chat/{id}", h.Chat.Delete)
			r.Post("/chat/{id}/messages", h.Chat.SendMessage)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
