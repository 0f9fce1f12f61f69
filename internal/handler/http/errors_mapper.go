package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/playground-auth/internal/service"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/internal/validators"
)

type errorResponse struct {
	target error
	status int
	msg    string
}

// errorResponses is matched top to bottom with errors.Is.
var errorResponses = []errorResponse{
	{errInvalidJSON, http.StatusBadRequest, msgInvalidJSON},

	{service.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{service.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{service.ErrUsernameRequired, http.StatusBadRequest, "New username is required"},
	{service.ErrEmailRequired, http.StatusBadRequest, "New email is required"},
	{service.ErrPasswordsRequired, http.StatusBadRequest, "New password and confirm password are required"},
	{service.ErrPasswordsMismatch, http.StatusBadRequest, "New password and confirm password do not match"},
	{service.ErrIncorrectPassword, http.StatusBadRequest, "Incorrect password"},
	{service.ErrUnsupportedLanguage, http.StatusBadRequest, "Unsupported language"},

	{validators.ErrInvalidUsernameFormat, http.StatusBadRequest, validators.ErrInvalidUsernameFormat.Error()},
	{validators.ErrInvalidUsernameLength, http.StatusBadRequest, validators.ErrInvalidUsernameLength.Error()},
	{validators.ErrInvalidEmail, http.StatusBadRequest, validators.ErrInvalidEmail.Error()},
	{validators.ErrPasswordTooShort, http.StatusBadRequest, validators.ErrPasswordTooShort.Error()},
	{validators.ErrPasswordTooLong, http.StatusBadRequest, validators.ErrPasswordTooLong.Error()},

	{store.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{store.ErrUsernameTaken, http.StatusBadRequest, "Username is already taken"},
	{store.ErrEmailTaken, http.StatusBadRequest, "Email is already taken"},
	{store.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
}

// responseFromError returns the status and message mapped to err.
// ok is false when err is not a known domain error.
func responseFromError(err error) (status int, msg string, ok bool) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.msg, true
		}
	}
	return 0, "", false
}
