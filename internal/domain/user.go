package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application. Users sign in with
// their email address only; there is no password.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// UserRepository defines persistence operations for users.
// Lookups return ErrNotFound when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
