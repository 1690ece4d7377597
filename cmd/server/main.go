// Package main implements the entry point for the CardStack API server:
// flashcard decks and collections, spaced repetition review, and an AI
// chat assistant that can manage a user's content through tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/cardstack/cardstack-api/internal/config"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run database migrations and exit (up, down, status)")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := connectDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if migrateCmd != "" {
		if err := runMigrations(db, migrateCmd, appLogger); err != nil {
			return fmt.Errorf("migration %q failed: %w", migrateCmd, err)
		}
		appLogger.Info("migration complete", slog.String("command", migrateCmd))
		return nil
	}

	app, err := newApplication(cfg, db, appLogger)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	return app.serve()
}
