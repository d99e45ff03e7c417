package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the server-side session record behind the HTTP-only cookie.
// It carries only the user identifier plus pending flash messages; user
// data is re-fetched per request.
type Session struct {
	Token     string         `gorm:"primaryKey;type:uuid" json:"token"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Flash     datatypes.JSON `json:"-"`
	ExpiresAt time.Time      `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
