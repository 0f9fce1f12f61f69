package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, errInvalidJSON, http.StatusInternalServerError, msgServerError)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, msgServerError)
		return
	}

	log.Info().Str("id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")
	utils.WriteMessage(w, "User registered successfully", http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, errInvalidJSON, http.StatusInternalServerError, msgServerError)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, msgServerError)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteMessage(w, msgServerError, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("id", foundUser.UserID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString, Username: foundUser.Username}, http.StatusOK)
}

// writeError answers with the response mapped from err. Errors without a
// mapping are logged and answered with the fallback pair.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallbackStatus int, fallbackMsg string) {
	status, msg, ok := responseFromError(err)
	if !ok {
		logger.FromRequest(r).Err(err).Str("path", r.URL.Path).Msg("request failed")
		status, msg = fallbackStatus, fallbackMsg
	}
	utils.WriteMessage(w, msg, status)
}
