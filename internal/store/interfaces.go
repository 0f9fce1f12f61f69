package store

import (
	"context"
	"time"

	"github.com/MKhiriev/playground-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts and their usage counters.
//
// Implementations report a missing user with [ErrUserNotFound] and
// uniqueness violations with [ErrUsernameTaken], [ErrEmailTaken] or
// [ErrUserAlreadyExists].
type UserRepository interface {
	// CreateUser stores a new account and returns it with the identifier
	// assigned by the store.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdateEmail(ctx context.Context, userID, email string) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	// DeleteUser permanently removes the account and its counters.
	DeleteUser(ctx context.Context, userID string) error

	// IncrementCounter atomically adds one to the counter of language in the
	// mapping selected by kind, creating it at one when absent.
	IncrementCounter(ctx context.Context, username string, kind models.CounterKind, language models.Language) error
}
