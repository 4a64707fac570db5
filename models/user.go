package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"created_at"`
}

// UserProjection is the subset of User fields safe to expose externally.
type UserProjection struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Projection returns the externally visible view of the user.
func (u *User) Projection() UserProjection {
	return UserProjection{
		ID:    u.ID,
		Email: u.Email,
	}
}
