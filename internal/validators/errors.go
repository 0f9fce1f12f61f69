package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsernameFormat = errors.New("Username can only contain letters, numbers, underscores, hyphens, and periods (3-30 characters).")
	ErrInvalidUsernameLength = errors.New("Username should be between 5 and 30 characters")
	ErrInvalidEmail          = errors.New("Invalid email format")
	ErrPasswordTooShort      = errors.New("Password must be at least 8 characters long")
	ErrPasswordTooLong       = errors.New("Password must be at most 72 bytes long")
)
