package models

// MessageResponse is the JSON body of plain API answers, errors included.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ProfileResponse is the body of GET /api/protected. Email is only
// present when the caller asked for it with ?email=true.
type ProfileResponse struct {
	Msg      string `json:"msg"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// LoginResponse is the body of a successful login or password change.
type LoginResponse struct {
	Msg      string `json:"msg,omitempty"`
	Token    string `json:"token"`
	Username string `json:"username"`
}
