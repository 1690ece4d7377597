package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
//
// Ownership misses deliberately surface as not-found: a row that exists but
// belongs to another user is indistinguishable from a row that does not
// exist, so callers can never probe for other users' data.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store under the caller's identity.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionRequired is returned by multi-statement operations that
	// were invoked outside a transaction.
	ErrTransactionRequired = errors.New("operation requires a transaction")

	// Entity-specific "not found" errors

	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrDeckNotFound       = fmt.Errorf("%w: deck", ErrNotFound)
	ErrCollectionNotFound = fmt.Errorf("%w: collection", ErrNotFound)
	ErrCardNotFound       = fmt.Errorf("%w: card", ErrNotFound)
	ErrChatNotFound       = fmt.Errorf("%w: chat", ErrNotFound)
	ErrStatsNotFound      = fmt.Errorf("%w: review stats", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrDeckAlreadyInCollection indicates the deck-collection link already exists.
	ErrDeckAlreadyInCollection = fmt.Errorf("%w: deck already in collection", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
