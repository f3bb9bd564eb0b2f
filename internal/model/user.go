package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	ID         string    `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	Nombre     string    `json:"nombre" bson:"nombre" gorm:"size:255;not null"`
	Email      string    `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	Password   string    `json:"-" bson:"password" gorm:"size:255;not null"` // bcrypt hash, never exposed
	Token      string    `json:"-" bson:"token" gorm:"size:64;index"`
	Confirmado bool      `json:"-" bson:"confirmado" gorm:"default:false"`
	CreatedAt  time.Time `json:"-" bson:"createdAt"`
	UpdatedAt  time.Time `json:"-" bson:"updatedAt"`
}

// BeforeCreate assigns an id before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// Summary returns the redacted view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Nombre: u.Nombre, Email: u.Email}
}

// UserSummary is the public projection of a User: no password, token,
// confirmation flag or timestamps.
type UserSummary struct {
	ID     string `json:"_id" bson:"_id"`
	Nombre string `json:"nombre" bson:"nombre"`
	Email  string `json:"email" bson:"email"`
}
