package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxUsernameLength = 64

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long (max 64 characters)")
	ErrUsernameInvalid  = errors.New("username must not contain control characters")
)

// ValidateUsername validates an already trimmed username
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}

	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	for _, r := range username {
		if unicode.IsControl(r) {
			return ErrUsernameInvalid
		}
	}

	return nil
}
