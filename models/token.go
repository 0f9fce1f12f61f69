package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued at login. The user identifier is the
// only application claim; registered claims carry iat and, when configured,
// exp.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing).
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be returned to the client.
//
// UserID is a cached copy of the "userId" claim.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "userId" claim.
	UserID string `json:"-"`
}

// GetUserID extracts the user identifier from the parsed token claims.
func (t *Token) GetUserID() (string, error) {
	if t.Token == nil {
		return "", errors.New("token is not parsed")
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", errors.New("token has no userId claim")
	}

	return claims.UserID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
