package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/fileshare/internal/validation"
)

func TestAuthService_RegisterAndVerify(t *testing.T) {
	s := setupServices(t, 1024)
	ctx := context.Background()

	user, err := s.auth.Register(ctx, "  alice ", "pw123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	verified, err := s.auth.Verify(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	s := setupServices(t, 1024)
	ctx := context.Background()

	first, err := s.auth.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = s.auth.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The first registration keeps its password
	verified, err := s.auth.Verify(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, verified.ID)

	_, err = s.auth.Verify(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	s := setupServices(t, 1024)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"empty username", "   ", "pw", validation.ErrUsernameRequired},
		{"long username", strings.Repeat("a", validation.MaxUsernameLength+1), "pw", validation.ErrUsernameTooLong},
		{"empty password", "bob", "", validation.ErrPasswordRequired},
		{"long password", "bob", strings.Repeat("p", 73), validation.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.auth.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_VerifyFailuresShareOneError(t *testing.T) {
	s := setupServices(t, 1024)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = s.auth.Verify(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.auth.Verify(ctx, "nobody", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
