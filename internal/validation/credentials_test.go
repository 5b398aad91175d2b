package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	require.NoError(t, ValidateUsername("alice"))
	require.NoError(t, ValidateUsername("Zoë Smith"))
	require.NoError(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength)))

	assert.ErrorIs(t, ValidateUsername(""), ErrUsernameRequired)
	assert.ErrorIs(t, ValidateUsername("   "), ErrUsernameRequired)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength+1)), ErrUsernameTooLong)
	assert.ErrorIs(t, ValidateUsername("bob\x00"), ErrUsernameInvalid)
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("pw123"))
	require.NoError(t, ValidatePassword(strings.Repeat("x", 72)))

	assert.ErrorIs(t, ValidatePassword(""), ErrPasswordRequired)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
}
