package models

import "time"

// Session maps a bearer token to a user. A token stays valid until the row is
// deleted at logout; there is no expiry.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:512" json:"-"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
