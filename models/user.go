package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	Role              UserRole   `json:"role" db:"role"`
	EmailConfirmedAt  *time.Time `json:"email_confirmed_at" db:"email_confirmed_at"`
	ConfirmationToken *string    `json:"-" db:"confirmation_token"`
	ResetToken        *string    `json:"-" db:"reset_token"`
	ResetExpiresAt    *time.Time `json:"-" db:"reset_expires_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

func (u User) IsConfirmed() bool {
	return u.EmailConfirmedAt != nil
}

// Profile is the side row holding the display name, keyed by user id.
type Profile struct {
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	FullName    *string    `json:"full_name,omitempty" db:"full_name"`
	PhoneNumber *string    `json:"phone_number,omitempty" db:"phone_number"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// AuthSession is a server-side login; access tokens are honoured only while it exists.
type AuthSession struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
