package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	IsActive       bool
	TelegramChatID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasTelegram reports whether the user has a Telegram chat linked for
// timer notifications.
func (u *User) HasTelegram() bool {
	return u.TelegramChatID != nil && *u.TelegramChatID != ""
}
