// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but has no second space-separated part.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the second part of the "Authorization"
	// header is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// errInvalidJSON is reported for request bodies that do not decode.
	errInvalidJSON = errors.New("invalid JSON was passed")
)

// Response messages that are not derived from a service error.
const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid or expired token"
	msgServerError  = "Server error"
	msgInvalidJSON  = "Invalid JSON was passed"
)
