package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/accounthub/accounts-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrUserNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("lookup failed: %w", store.ErrUserNotFound)))

	assert.False(t, store.IsNotFoundError(nil))
	assert.False(t, store.IsNotFoundError(store.ErrUsernameExists))
	assert.False(t, store.IsNotFoundError(errors.New("entity not found")))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsDuplicateError(store.ErrDuplicate))
	assert.True(t, store.IsDuplicateError(store.ErrUsernameExists))
	assert.True(t, store.IsDuplicateError(fmt.Errorf("create failed: %w", store.ErrUsernameExists)))

	assert.False(t, store.IsDuplicateError(nil))
	assert.False(t, store.IsDuplicateError(store.ErrUserNotFound))
}

func TestSentinelWrapping(t *testing.T) {
	t.Parallel()

	// Entity-specific sentinels must remain matchable as their generic kind.
	assert.ErrorIs(t, store.ErrUserNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrUsernameExists, store.ErrDuplicate)
}
