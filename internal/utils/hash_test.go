// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "password123") {
		t.Error("expected password to match its hash")
	}
	if CheckPassword(hash, "password124") {
		t.Error("expected different password not to match")
	}
}

// TestHashPassword_Salted проверяет что одинаковый пароль дает разные хеши
func TestHashPassword_Salted(t *testing.T) {
	hash1, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := HashPassword("same-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("expected different hashes for the same password")
	}
	if !CheckPassword(hash1, "same-password") || !CheckPassword(hash2, "same-password") {
		t.Error("both hashes must verify")
	}
}

func TestHashPassword_UsesCost(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != bcrypt.MinCost+1 {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost+1, cost)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1), bcrypt.MinCost)
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got: %v", err)
	}

	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost); err != nil {
		t.Fatalf("expected 72-byte password to hash, got: %v", err)
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "password123") {
		t.Error("malformed hash must never match")
	}
}
