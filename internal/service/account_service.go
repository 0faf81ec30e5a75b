package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/accounthub/accounts-api/internal/service/auth"
	"github.com/accounthub/accounts-api/internal/store"
)

// AccountService is the sole authority over account creation, lookup and
// session-state transitions. Username uniqueness and the session state
// machine are enforced here and nowhere else; the transport layer only
// translates, the store only persists.
type AccountService interface {
	// ListUsers retrieves all users in store iteration order. Read-only.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUserByID retrieves the user with the given ID. Read-only.
	// Returns store.ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// CreateUser registers a new account. The account starts with an active
	// session and a freshly minted session token.
	// Returns store.ErrUsernameExists if the username is already taken.
	CreateUser(ctx context.Context, username, password string, birthday *time.Time) (*domain.User, error)

	// Login activates the session of the account with the given username.
	// Returns store.ErrUserNotFound if the username is unknown,
	// ErrWrongPassword on a credential mismatch, and ErrAlreadyLoggedIn if
	// the session is already active (re-login is rejected, not idempotent).
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Logout deactivates the session of the account resolved by token.
	// Returns ErrLogoutDenied if the token resolves to no account or the
	// account has no active session.
	Logout(ctx context.Context, token string) (*domain.User, error)

	// UpdateUser applies the patch to the stored account. Only the username
	// and birthday are mutable through this path; id, token and creation
	// date are never touched.
	// Returns store.ErrUsernameExists if the username belongs to a different
	// account and store.ErrUserNotFound if the ID is unknown.
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) error
}

// UserPatch carries the mutable fields of an update request. A zero-value
// field leaves the stored value unchanged.
type UserPatch struct {
	Username string
	Birthday *time.Time
}

// accountService implements the AccountService interface.
type accountService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewAccountService creates a new AccountService backed by the given store
// and credential helpers.
func NewAccountService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "account_service"),
	}
}

// ListUsers retrieves all users in store iteration order.
func (s *accountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by their ID.
func (s *accountService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", id)
		} else {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// CreateUser registers a new account. The service-level uniqueness check is
// a fast path; the store's unique index remains the authoritative guard, so
// a racing create still fails with store.ErrUsernameExists.
func (s *accountService) CreateUser(
	ctx context.Context,
	username, password string,
	birthday *time.Time,
) (*domain.User, error) {
	if password == "" {
		return nil, fmt.Errorf("failed to create user: %w",
			domain.NewValidationError("password", "cannot be empty", domain.ErrEmptyPassword))
	}

	if err := s.checkUsernameFree(ctx, username, uuid.Nil); err != nil {
		s.logger.Debug("attempted to create user with existing username", "username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := domain.NewUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Birthday = birthday

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("username taken by concurrent create", "username", username)
		} else {
			s.logger.Error("failed to save user", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("created user",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Login validates the credentials and activates the account's session.
// Logging into an already-active session is rejected.
func (s *accountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown username", "username", username)
		} else {
			s.logger.Error("failed to retrieve user for login", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	// A missing password never matches, on either side.
	if password == "" || user.HashedPassword == "" {
		return nil, ErrWrongPassword
	}
	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", "username", username)
		return nil, ErrWrongPassword
	}

	if user.LoggedIn() {
		s.logger.Debug("login for already active session", "username", username)
		return nil, ErrAlreadyLoggedIn
	}

	user.Session = domain.SessionLoggedIn
	user.Status = domain.StatusOnline

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist login", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	return user, nil
}

// Logout resolves the account by its session token and deactivates the
// session. A token that resolves to nothing and a token on a logged-out
// account are indistinguishable to the caller.
func (s *accountService) Logout(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrLogoutDenied
	}

	user, err := s.userStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("logout with unknown token")
			return nil, ErrLogoutDenied
		}
		s.logger.Error("failed to resolve token for logout", "error", err)
		return nil, fmt.Errorf("failed to log out: %w", err)
	}

	if !user.LoggedIn() {
		s.logger.Debug("logout without active session", "user_id", user.ID)
		return nil, ErrLogoutDenied
	}

	user.Session = domain.SessionLoggedOut
	user.Status = domain.StatusOffline

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist logout", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to log out: %w", err)
	}

	return user, nil
}

// UpdateUser loads the account, applies the patch and saves it back in one
// explicit step; there is no implicit persistence anywhere in this path.
func (s *accountService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) error {
	if patch.Username != "" {
		if err := s.checkUsernameFree(ctx, patch.Username, id); err != nil {
			s.logger.Debug("attempted to update to an existing username",
				"user_id", id,
				"username", patch.Username)
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("update for unknown user", "user_id", id)
		} else {
			s.logger.Error("failed to retrieve user for update", "error", err, "user_id", id)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if patch.Username != "" {
		user.Username = patch.Username
	}
	if patch.Birthday != nil {
		user.Birthday = patch.Birthday
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("username taken by concurrent update", "user_id", id)
		} else {
			s.logger.Error("failed to persist update", "error", err, "user_id", id)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("updated user", "user_id", id)
	return nil
}

// checkUsernameFree rejects a username that belongs to an account other
// than owner. It is a fast-path check only; the store's unique index
// arbitrates concurrent writers.
func (s *accountService) checkUsernameFree(ctx context.Context, username string, owner uuid.UUID) error {
	existing, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == owner {
		return nil
	}
	return store.ErrUsernameExists
}
