// Package model defines database models
package model

import "time"

type User struct {
	ID           string    `gorm:"column:user_id;primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Sessions []Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Resumes  []Resume  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
