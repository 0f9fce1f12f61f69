// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account input before it reaches the store.
//
// The rules are the ones the API reports to users verbatim: username
// charset and length, email shape and password length. Each rule has its
// own sentinel error whose text is the user-facing message.
//
// Services receive a [Validator] and call it with the request value and,
// when only part of a request changes, the names of the fields to check.
package validators

import "context"

// Validator validates request values of the types it knows.
//
// With no fields the type's default rule order is applied and the first
// failure is returned. With fields only those rules run, in the given order.
// Unknown types yield [ErrUnsupportedType], unknown field names
// [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
