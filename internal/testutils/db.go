package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/platform/postgres/migrations"
)

// migrationsRunOnce ensures migrations are only run once across all tests.
var migrationsRunOnce sync.Once

// SetupTestDatabaseSchema resets the schema to baseline and applies all
// embedded migrations. Call it once from TestMain; repeat calls are no-ops.
func SetupTestDatabaseSchema(db *sql.DB) error {
	var setupErr error
	migrationsRunOnce.Do(func() {
		goose.SetBaseFS(migrations.Migrations)
		goose.SetLogger(goose.NopLogger())

		if err := goose.SetDialect("postgres"); err != nil {
			setupErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}

		if err := goose.DownTo(db, ".", 0); err != nil {
			setupErr = fmt.Errorf("failed to reset database schema: %w", err)
			return
		}

		if err := goose.Up(db, "."); err != nil {
			setupErr = fmt.Errorf("failed to apply migrations: %w", err)
			return
		}
	})

	return setupErr
}

// GetTestDB opens a connection to the integration test database and
// registers cleanup on the test. The schema is migrated on first use.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", GetTestDatabaseURL(t))
	require.NoError(t, err, "failed to open test database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	require.NoError(t, SetupTestDatabaseSchema(db), "failed to set up test schema")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so each
// test sees a clean database and tests can run in parallel without
// interfering with each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
