// Package testutils provides shared helpers for integration tests,
// centered on transaction-based isolation against a real PostgreSQL
// database. Tests that need a database check IsIntegrationTestEnvironment
// and skip when DATABASE_URL is not set.
package testutils

import (
	"os"
	"testing"
)

// IsIntegrationTestEnvironment returns true if the environment is configured
// for running integration tests with a database connection.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDatabaseURL returns the database URL for integration tests,
// failing the test if DATABASE_URL is not set.
func GetTestDatabaseURL(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL environment variable is required for this test")
	}
	return dbURL
}

// MustGetTestDatabaseURL is the TestMain variant of GetTestDatabaseURL;
// it panics because no testing.T is available there.
func MustGetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL environment variable is required for integration tests")
	}
	return dbURL
}
