// Package mocks provides test doubles for the store interfaces.
package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/domain"
	"github.com/accounthub/accounts-api/internal/store"
)

// UserStore implements store.UserStore for testing. Each method can be
// overridden through its function field; without an override it falls back
// to an in-memory map keyed by user ID.
type UserStore struct {
	FindAllFn       func(ctx context.Context) ([]*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetByTokenFn    func(ctx context.Context, token string) (*domain.User, error)
	CreateFn        func(ctx context.Context, user *domain.User) error
	UpdateFn        func(ctx context.Context, user *domain.User) error

	// Users backs the default in-memory implementation.
	Users map[uuid.UUID]*domain.User

	// CreateCalls and UpdateCalls count mutating calls that reached the
	// default implementation.
	CreateCalls int
	UpdateCalls int
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a mock store with an empty in-memory state.
func NewUserStore() *UserStore {
	return &UserStore{
		Users: make(map[uuid.UUID]*domain.User),
	}
}

// FindAll implements the UserStore interface.
// The default implementation returns users ordered by creation time, which
// matches the Postgres implementation's iteration order.
func (m *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID.String() < users[j].ID.String()
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// GetByID implements the UserStore interface.
func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if user, ok := m.Users[id]; ok {
		return copyUser(user), nil
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface.
func (m *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	for _, user := range m.Users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByToken implements the UserStore interface.
func (m *UserStore) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	if m.GetByTokenFn != nil {
		return m.GetByTokenFn(ctx, token)
	}

	for _, user := range m.Users {
		if user.Token == token {
			return copyUser(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Create implements the UserStore interface.
func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.CreateCalls++
	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.Users[user.ID] = copyUser(user)
	return nil
}

// Update implements the UserStore interface.
func (m *UserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.UpdateCalls++
	if _, ok := m.Users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for _, existing := range m.Users {
		if existing.ID != user.ID && existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.Users[user.ID] = copyUser(user)
	return nil
}

// copyUser keeps the mock's state isolated from caller-side mutation.
func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.Birthday != nil {
		bd := *u.Birthday
		c.Birthday = &bd
	}
	return &c
}
