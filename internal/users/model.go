package users

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInput is returned when a required registration field is missing.
var ErrInvalidInput = errors.New("uid and email are required")

// ErrAlreadyExists is returned when a user record for the UID already exists.
var ErrAlreadyExists = errors.New("user already exists")

// ErrEmailInUse is returned when the identity provider already has an account
// for the email.
var ErrEmailInUse = errors.New("email already in use")

// ErrNotFound is returned when no account exists for a sign-in email.
var ErrNotFound = errors.New("user does not exist")

// User is an application profile keyed by the identity provider UID.
// Records are created on sign-up and never mutated or deleted afterwards.
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Repository defines persistence operations for Users.
type Repository interface {
	// Create inserts the user if and only if no record exists for user.ID.
	// Returns ErrAlreadyExists otherwise.
	Create(ctx context.Context, user User) error
	// Get returns the user for the given provider UID, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*User, error)
}
