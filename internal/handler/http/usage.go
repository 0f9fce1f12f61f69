package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/models"
)

// count returns the handler of POST /api/<kind>Code/count.
func (h *Handler) count(kind models.CounterKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.CountRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("Invalid JSON was passed")
			h.writeError(w, r, errInvalidJSON, http.StatusInternalServerError, msgServerError)
			return
		}

		err := h.services.UsageService.Increment(r.Context(), kind, request.Username, request.Language)
		if err != nil {
			h.writeError(w, r, err, http.StatusInternalServerError, msgServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
