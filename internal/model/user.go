package model

import (
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Identity is the authenticated view of a user carried on the request context.
// It never holds the password hash.
type Identity struct {
	SessionID string
	UserID    int64
	Username  string
}
