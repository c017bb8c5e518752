package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jari-backend/internal/common/logger"
)

// NewRouter wires the webhook endpoint behind secret auth, plus unauthenticated
// health and metrics endpoints.
func NewRouter(h *Handler, secret string, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(SecretAuth(secret, log))
		r.Post("/handle_call", h.HandleCall)
	})

	return r
}
