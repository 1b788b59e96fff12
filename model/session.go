package model

import "time"

// Session is a server-held record authorizing one issued token for a
// bounded time window. Only a digest of the token is stored, never the
// token itself. A user may hold several rows at once, active or not.
type Session struct {
	ID        string    `gorm:"column:session_id;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	TokenHash string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

func (Session) TableName() string {
	return "user_sessions"
}
