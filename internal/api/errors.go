package api

import (
	"errors"
	"net/http"

	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/accounthub/accounts-api/internal/service"
	"github.com/accounthub/accounts-api/internal/store"
)

// MapErrorToStatusCode maps domain errors to HTTP status codes: not found
// to 404, uniqueness conflicts to 409, credential or session-state
// rejections to 403, invalid input to 400. Everything unrecognized is an
// internal error.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case service.IsForbiddenError(err):
		return http.StatusForbidden

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Internal details never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username is not unique"

	case errors.Is(err, service.ErrWrongPassword):
		return "Password incorrect"

	case errors.Is(err, service.ErrAlreadyLoggedIn):
		return "Already logged in"

	case errors.Is(err, service.ErrLogoutDenied):
		return "Could not log out user"

	case errors.As(err, &validationErr):
		return "Invalid " + validationErr.Field

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid user data"

	default:
		return "An unexpected error occurred"
	}
}
