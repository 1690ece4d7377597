package api

import (
	"errors"
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/service/auth"
	"github.com/cardstack/cardstack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Ownership misses surface as not-found; there is no 403 for entities.
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidReviewOutcome),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyChatTitle),
		errors.Is(err, domain.ErrEmptyDeckName),
		errors.Is(err, domain.ErrDeckNameTooLong),
		errors.Is(err, domain.ErrEmptyCollectionName),
		errors.Is(err, domain.ErrEmptyCardFront),
		errors.Is(err, domain.ErrEmptyCardBack):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error.
// Internal details never pass through.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, store.ErrCollectionNotFound):
		return "Collection not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrChatNotFound):
		return "Chat not found"
	case errors.Is(err, store.ErrStatsNotFound):
		return "Review stats not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDeckAlreadyInCollection):
		return "Deck is already in this collection"

	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		// Validation sentinels carry no internal detail; their text is safe.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the mapped, sanitized error response and logs
// the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
