package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected account operations.
//
// The service surfaces exactly three caller-visible failure kinds:
// "not found" and "conflict" are the store sentinels (store.ErrUserNotFound,
// store.ErrUsernameExists), and every credential or session-state rejection
// wraps ErrForbidden. Callers use errors.Is to branch; the API layer maps
// the kinds to HTTP status codes.
var (
	// ErrForbidden is the base error for operations rejected because of a
	// credential mismatch or an invalid session-state transition.
	ErrForbidden = errors.New("forbidden")

	// ErrWrongPassword indicates the supplied password did not match the
	// stored credential. A missing password or a missing stored credential
	// never matches.
	ErrWrongPassword = fmt.Errorf("%w: password incorrect", ErrForbidden)

	// ErrAlreadyLoggedIn indicates a login attempt against an account whose
	// session is already active.
	ErrAlreadyLoggedIn = fmt.Errorf("%w: already logged in", ErrForbidden)

	// ErrLogoutDenied indicates a logout attempt with a token that resolves
	// to no account, or to an account without an active session.
	ErrLogoutDenied = fmt.Errorf("%w: could not log out user", ErrForbidden)
)

// IsForbiddenError checks if the error is any kind of "forbidden" rejection.
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}
