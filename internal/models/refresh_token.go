package models

import (
	"time"
)

// RefreshToken is a persisted refresh token. Tokens are rotated on use:
// a refresh revokes the presented row and inserts its replacement, and
// logout revokes without replacing.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Valid reports whether the token can still be exchanged.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
