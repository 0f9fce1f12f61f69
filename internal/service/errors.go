package service

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrUsernameRequired  = errors.New("new username is required")
	ErrEmailRequired     = errors.New("new email is required")
	ErrPasswordsRequired = errors.New("new password and confirm password are required")
	ErrPasswordsMismatch = errors.New("new password and confirm password do not match")
	ErrIncorrectPassword = errors.New("incorrect password")

	ErrUnsupportedLanguage = errors.New("unsupported language")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
