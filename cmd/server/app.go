package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cardstack/cardstack-api/internal/api"
	apimiddleware "github.com/cardstack/cardstack-api/internal/api/middleware"
	"github.com/cardstack/cardstack-api/internal/assistant"
	"github.com/cardstack/cardstack-api/internal/config"
	"github.com/cardstack/cardstack-api/internal/domain/srs"
	"github.com/cardstack/cardstack-api/internal/platform/postgres"
	"github.com/cardstack/cardstack-api/internal/service"
	"github.com/cardstack/cardstack-api/internal/service/auth"
)

// application holds the wired dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	handlers       api.Handlers
	authMiddleware *apimiddleware.AuthMiddleware
}

// newApplication wires stores, services, the assistant runner and the API
// handlers from the loaded configuration.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	deckStore := postgres.NewPostgresDeckStore(db, logger)
	collectionStore := postgres.NewPostgresCollectionStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	chatStore := postgres.NewPostgresChatStore(db, logger)
	statsStore := postgres.NewPostgresStatsStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userService, err := service.NewUserService(
		userStore, jwtService, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	deckService, err := service.NewDeckService(db, deckStore, cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	collectionService, err := service.NewCollectionService(collectionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection service: %w", err)
	}

	cardService, err := service.NewCardService(cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	reviewService, err := service.NewReviewService(
		db, cardStore, statsStore, srs.NewDefaultService(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	model, err := assistant.NewGeminiModel(context.Background(), cfg.Assistant)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant model: %w", err)
	}

	runner, err := assistant.NewRunner(
		model, db, deckStore, collectionStore, cardStore,
		cfg.Assistant.MaxToolIterations, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant runner: %w", err)
	}

	chatService, err := service.NewChatService(db, chatStore, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	return &application{
		config: cfg,
		logger: logger,
		db:     db,
		handlers: api.Handlers{
			Auth:       api.NewAuthHandler(userService),
			Deck:       api.NewDeckHandler(deckService),
			Collection: api.NewCollectionHandler(collectionService),
			Card:       api.NewCardHandler(cardService),
			Chat:       api.NewChatHandler(chatService),
			Review:     api.NewReviewHandler(reviewService),
		},
		authMiddleware: apimiddleware.NewAuthMiddleware(jwtService),
	}, nil
}
