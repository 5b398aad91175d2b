package model

import (
	"time"
)

type Session struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) Identity() *Identity {
	return &Identity{
		SessionID: s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
	}
}
