// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account of the playground. It carries identity
// attributes, the credential hash and the per-language usage counters.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the opaque identifier assigned by the store at creation.
	UserID string `json:"-"`

	// Username is unique across all users, 5-30 characters of [a-zA-Z0-9_.-].
	Username string `json:"username"`

	// Email is unique across all users.
	Email string `json:"email"`

	// PasswordHash is the bcrypt output of the user's password.
	// It is never serialised to clients.
	PasswordHash string `json:"-"`

	// LastLogin is nil until the first successful login.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// CreatedAt is fixed when the account is registered.
	CreatedAt time.Time `json:"created_at"`

	RunCodeCount      Counters `json:"runCodeCount"`
	GenerateCodeCount Counters `json:"generateCodeCount"`
	RefactorCodeCount Counters `json:"refactorCodeCount"`
}

// NewUser returns a user with every counter mapping seeded with zeroes.
func NewUser(username, email, passwordHash string, createdAt time.Time) User {
	return User{
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		CreatedAt:         createdAt,
		RunCodeCount:      NewCounters(),
		GenerateCodeCount: NewCounters(),
		RefactorCodeCount: NewCounters(),
	}
}

// Usage returns the three counter mappings of the user.
func (u User) Usage() Usage {
	return Usage{
		RunCodeCount:      u.RunCodeCount,
		GenerateCodeCount: u.GenerateCodeCount,
		RefactorCodeCount: u.RefactorCodeCount,
	}
}

// Counters returns the counter mapping that belongs to kind.
// Unknown kinds yield nil.
func (u *User) Counters(kind CounterKind) Counters {
	switch kind {
	case RunCode:
		return u.RunCodeCount
	case GenerateCode:
		return u.GenerateCodeCount
	case RefactorCode:
		return u.RefactorCodeCount
	default:
		return nil
	}
}

// SetCounters replaces the counter mapping that belongs to kind.
func (u *User) SetCounters(kind CounterKind, counters Counters) {
	switch kind {
	case RunCode:
		u.RunCodeCount = counters
	case GenerateCode:
		u.GenerateCodeCount = counters
	case RefactorCode:
		u.RefactorCodeCount = counters
	}
}
