package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/fileshare/internal/model"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	u := &model.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byName, err := r.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := r.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.User{Username: "alice", PasswordHash: "h1"}))

	err := r.Create(ctx, &model.User{Username: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// Usernames are case sensitive, like the column they live in
	require.NoError(t, r.Create(ctx, &model.User{Username: "Alice", PasswordHash: "h3"}))
}

func TestUserRepository_ConcurrentDuplicateOnlyOneWins(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.Create(ctx, &model.User{Username: "race", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicateUsername):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestUserRepository_NotFound(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.ByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = r.ByID(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
