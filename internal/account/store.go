package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a user (or an item owned by one) does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyFavorite is returned when a favorite with the same name exists.
	ErrAlreadyFavorite = errors.New("already in favorites")
)

// Store is the contract the in-memory and SQL user stores satisfy. Users are
// stored and loaded as whole documents.
type Store interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, u User) error
	ListUsers(ctx context.Context) ([]User, error)
}
