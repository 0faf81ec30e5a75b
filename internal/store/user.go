package store

import (
	"context"

	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
// Every mutating call is durable when it returns: the store is the commit
// boundary, there is no separate flush step.
type UserStore interface {
	// FindAll retrieves all users in store iteration order.
	// Returns an empty slice when the store holds no users.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByToken retrieves a user by their session token.
	// Returns ErrUserNotFound if no user carries the token.
	GetByToken(ctx context.Context, token string) (*domain.User, error)

	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken; the
	// storage-level unique index is the authoritative uniqueness guard.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// Update persists an in-place mutation of an existing user, keyed by ID.
	// The caller MUST provide the complete user object.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if updating to a username that already exists.
	Update(ctx context.Context, user *domain.User) error
}
