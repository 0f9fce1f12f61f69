package models

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangeUsernameRequest is the body of PUT /api/change-username.
type ChangeUsernameRequest struct {
	NewUsername string `json:"newUsername"`
}

// ChangeEmailRequest is the body of PUT /api/change-email.
type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

// ChangePasswordRequest is the body of PUT /api/change-password.
type ChangePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// VerifyPasswordRequest is the body of POST /api/verify-password.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// CountRequest is the body of the counter endpoints
// (POST /api/{runCode,generateCode,refactorCode}/count).
type CountRequest struct {
	Username string `json:"username"`
	Language string `json:"language"`
}
