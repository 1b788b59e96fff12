package model

import (
	"encoding/json"
	"time"
)

// Resume holds one saved résumé document. Data is an opaque JSON blob
// the server never inspects beyond shape and size validation. Every
// save inserts a new row, there is no update-in-place.
type Resume struct {
	ID        string          `gorm:"column:resume_id;primaryKey" json:"resume_id"`
	UserID    string          `gorm:"column:user_id;not null;index" json:"user_id"`
	Title     string          `gorm:"not null" json:"title"`
	Data      json.RawMessage `gorm:"not null" json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `gorm:"index" json:"updated_at"`
}
