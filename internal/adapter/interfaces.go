// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the playground-auth HTTP API.
//
// The primary abstraction is [ServerAdapter], which hides request building,
// bearer-token management and response decoding from callers such as the
// command-line client.
//
// Non-2xx answers are mapped by mapHTTPError to the sentinel errors in
// errors.go, so callers can use [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrUnauthorized] for 401). The server's "msg" text is kept in the
// wrapped error.
package adapter

import (
	"context"

	"github.com/MKhiriev/playground-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the playground-auth server.
// Implementations are responsible for serialisation, authentication header
// management and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. An empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, request models.RegisterRequest) error

	// Login authenticates by email and password. On success the returned
	// token is stored via SetToken.
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error)

	// Profile returns the username of the token owner and, when withEmail
	// is set, the email.
	Profile(ctx context.Context, withEmail bool) (models.ProfileResponse, error)

	// Usage returns the three counter mappings of the token owner.
	Usage(ctx context.Context) (models.Usage, error)

	ChangeUsername(ctx context.Context, newUsername string) error
	ChangeEmail(ctx context.Context, newEmail string) error

	// ChangePassword replaces the password and stores the fresh token the
	// server issues in exchange.
	ChangePassword(ctx context.Context, request models.ChangePasswordRequest) (models.LoginResponse, error)

	VerifyPassword(ctx context.Context, password string) error

	// DeleteAccount removes the token owner and clears the stored token.
	DeleteAccount(ctx context.Context) error

	// Count increments one usage counter of username. No token is needed.
	Count(ctx context.Context, kind models.CounterKind, request models.CountRequest) error

	// Version returns the server's version string.
	Version(ctx context.Context) (string, error)
}
