package service

import (
	"context"

	"github.com/MKhiriev/playground-auth/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProfileService reads and mutates the account of an authenticated user.
// Every method reports a missing account with store.ErrUserNotFound.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	GetUsage(ctx context.Context, userID string) (models.Usage, error)

	ChangeUsername(ctx context.Context, userID, newUsername string) error
	ChangeEmail(ctx context.Context, userID, newEmail string) error

	// ChangePassword stores the new password and returns the updated user,
	// for whom the caller issues a fresh token.
	ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) (models.User, error)
	VerifyPassword(ctx context.Context, userID, password string) error

	DeleteAccount(ctx context.Context, userID string) error
}

// UsageService counts playground actions per user and language.
type UsageService interface {
	// Increment adds one to the kind counter of the language named by
	// languageName (a frontend name such as "c++") for username.
	Increment(ctx context.Context, kind models.CounterKind, username, languageName string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
