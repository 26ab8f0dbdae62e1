package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account stored in the database. OAuth-created accounts
// carry the provider name and subject and may have no password.
type User struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Email            string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password         string         `json:"-" gorm:"type:varchar(255)"`
	Name             string         `json:"name,omitempty" gorm:"type:varchar(100)"`
	Provider         string         `json:"provider,omitempty" gorm:"type:varchar(50)"`
	ProviderSubject  string         `json:"-" gorm:"type:varchar(100);index"`
	ResetToken       string         `json:"-" gorm:"type:varchar(100);index"`
	ResetTokenExpiry *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasValidResetToken reports whether token matches the stored reset token
// and has not expired.
func (u *User) HasValidResetToken(token string) bool {
	if u.ResetToken == "" || u.ResetToken != token {
		return false
	}
	return u.ResetTokenExpiry != nil && time.Now().Before(*u.ResetTokenExpiry)
}
