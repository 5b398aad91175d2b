package validation

import (
	"errors"
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
)

// ValidatePassword checks the only hard limits on a password: it must be
// present and fit into bcrypt's 72-byte input.
// bcrypt silently truncates (or, in newer versions, rejects) longer input.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	return nil
}
