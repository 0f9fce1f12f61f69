package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/service"
	"github.com/MKhiriev/playground-auth/internal/utils"
)

// auth returns an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// it via [service.AuthService.ParseToken] and, on success, stores the user
// ID in the request context under [utils.UserIDCtxKey].
//
// A missing header or token is answered with 403 "No token provided" on
// every route. A token that fails validation is answered with
// invalidTokenStatus, which is 401 or 403 depending on the route group.
func (h *Handler) auth(invalidTokenStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
				utils.WriteMessage(w, msgNoToken, http.StatusForbidden)
				return
			}

			tokenString, err := getTokenFromAuthHeader(authHeader)
			if err != nil {
				log.Debug().Err(err).Send()
				utils.WriteMessage(w, msgNoToken, http.StatusForbidden)
				return
			}

			ctx := r.Context()
			token, err := h.services.AuthService.ParseToken(ctx, tokenString)
			if err != nil {
				if !errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
					log.Err(err).Msg("error occurred during parsing token")
				}
				utils.WriteMessage(w, msgInvalidToken, invalidTokenStatus)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
		})
	}
}

// getTokenFromAuthHeader extracts the token from a raw "Authorization"
// header value of the form "<scheme> <token>". The scheme is not checked.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if there is no second part.
//   - [ErrEmptyToken] if the second part is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
