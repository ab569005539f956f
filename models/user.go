package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator account for the receipt portal. Operators are
// created by an admin; there is no self-service signup.
type User struct {
	gorm.Model
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"unique;not null" json:"email"`
	Password       string     `gorm:"not null" json:"-"`
	Role           string     `gorm:"not null;default:operator" json:"role"`
	OTP            string     `json:"-"`
	OTPGeneratedAt *time.Time `json:"-"`
	LastLogoutAt   *time.Time `gorm:"column:last_logout_at" json:"-"`
}

// TokenRevoked reports whether a token issued at the given Unix time was
// invalidated by a later logout. Tokens are compared at second precision,
// matching the iat claim.
func (u *User) TokenRevoked(issuedAt int64) bool {
	return u.LastLogoutAt != nil && issuedAt < u.LastLogoutAt.Unix()
}
