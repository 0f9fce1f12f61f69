package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/playground-auth/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader},
	}))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)

		r.Post("/api/runCode/count", h.count(models.RunCode))
		r.Post("/api/generateCode/count", h.count(models.GenerateCode))
		r.Post("/api/refactorCode/count", h.count(models.RefactorCode))

		r.Get("/api/version", h.getServerVersion)
	})

	// a rejected token answers 403 on these routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth(http.StatusForbidden))

		r.Get("/api/protected", h.getProfile)
		r.Get("/api/usage", h.getUsage)
		r.Post("/api/verify-password", h.verifyPassword)
		r.Delete("/api/account", h.deleteAccount)
	})

	// and 401 on these
	router.Group(func(r chi.Router) {
		r.Use(h.auth(http.StatusUnauthorized))

		r.Put("/api/change-username", h.changeUsername)
		r.Put("/api/change-email", h.changeEmail)
		r.Put("/api/change-password", h.changePassword)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) corsOrigins() []string {
	if len(h.allowedOrigins) == 0 {
		return []string{"*"}
	}
	return h.allowedOrigins
}
