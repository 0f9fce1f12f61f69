package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/models"
)

// Handlers in this file run behind the auth middleware. Failures without a
// domain mapping answer with the route's rejected-token response.

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusForbidden)
	if !ok {
		return
	}

	user, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, http.StatusForbidden, msgInvalidToken)
		return
	}

	response := models.ProfileResponse{Msg: "Protected data", Username: user.Username}
	if r.URL.Query().Get("email") == "true" {
		response.Email = user.Email
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusForbidden)
	if !ok {
		return
	}

	usage, err := h.services.ProfileService.GetUsage(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, http.StatusForbidden, msgInvalidToken)
		return
	}

	utils.WriteJSON(w, usage, http.StatusOK)
}

func (h *Handler) changeUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusUnauthorized)
	if !ok {
		return
	}

	var request models.ChangeUsernameRequest
	if !h.decode(w, r, &request, http.StatusUnauthorized) {
		return
	}

	if err := h.services.ProfileService.ChangeUsername(r.Context(), userID, request.NewUsername); err != nil {
		h.writeError(w, r, err, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	utils.WriteMessage(w, "Username updated successfully", http.StatusOK)
}

func (h *Handler) changeEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusUnauthorized)
	if !ok {
		return
	}

	var request models.ChangeEmailRequest
	if !h.decode(w, r, &request, http.StatusUnauthorized) {
		return
	}

	if err := h.services.ProfileService.ChangeEmail(r.Context(), userID, request.NewEmail); err != nil {
		h.writeError(w, r, err, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	utils.WriteMessage(w, "Email updated successfully", http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r, http.StatusUnauthorized)
	if !ok {
		return
	}

	var request models.ChangePasswordRequest
	if !h.decode(w, r, &request, http.StatusUnauthorized) {
		return
	}

	user, err := h.services.ProfileService.ChangePassword(ctx, userID, request)
	if err != nil {
		h.writeError(w, r, err, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteMessage(w, msgInvalidToken, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Msg:      "Password updated successfully",
		Token:    token.SignedString,
		Username: user.Username,
	}, http.StatusOK)
}

func (h *Handler) verifyPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusForbidden)
	if !ok {
		return
	}

	var request models.VerifyPasswordRequest
	if !h.decode(w, r, &request, http.StatusForbidden) {
		return
	}

	if err := h.services.ProfileService.VerifyPassword(r.Context(), userID, request.Password); err != nil {
		h.writeError(w, r, err, http.StatusForbidden, msgInvalidToken)
		return
	}

	utils.WriteMessage(w, "Password verified", http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, http.StatusForbidden)
	if !ok {
		return
	}

	if err := h.services.ProfileService.DeleteAccount(r.Context(), userID); err != nil {
		h.writeError(w, r, err, http.StatusForbidden, msgInvalidToken)
		return
	}

	utils.WriteMessage(w, "Account deleted successfully", http.StatusOK)
}

// userID reads the identifier stored by the auth middleware.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request, invalidTokenStatus int) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user ID in request context")
		utils.WriteMessage(w, msgInvalidToken, invalidTokenStatus)
	}
	return userID, ok
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any, invalidTokenStatus int) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, errInvalidJSON, invalidTokenStatus, msgInvalidToken)
		return false
	}
	return true
}
