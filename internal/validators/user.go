package validators

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUsername targets the account name (charset, then length).
	FieldUsername = "username"

	// FieldEmail targets the email address shape.
	FieldEmail = "email"

	// FieldPassword targets the minimum and maximum password length.
	FieldPassword = "password"

	// FieldNewPassword targets the maximum length of a replacement password.
	FieldNewPassword = "new_password"
)

const (
	MinUsernameLength = 5
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// UserValidator implements the Validator interface for account requests:
// RegisterRequest and ChangePasswordRequest.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms are
// accepted. Fields are checked in the order given; with no fields the
// default order for the type is used and the first failure is returned.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(ctx context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(request.Username); err != nil {
				return err
			}
		case FieldEmail:
			if !emailPattern.MatchString(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(request.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
			if len(request.Password) > utils.MaxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateChangePasswordRequest(ctx context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldNewPassword:
			if len(request.NewPassword) > utils.MaxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUsername applies the charset rule before the length rule, so a
// 3 or 4 character name passes the first and fails the second.
func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsernameFormat
	}
	if n := len(username); n < MinUsernameLength || n > MaxUsernameLength {
		return ErrInvalidUsernameLength
	}

	return nil
}
