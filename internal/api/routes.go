package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the session endpoints on a fresh sub-router. Extra
// middleware (the generation rate limiter) applies only to the generate
// endpoint; auth is applied by the caller so tests can exercise the
// handlers directly.
func (s *Server) Routes(generateMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/session", s.HandleCreateSession)
	r.Get("/session/{sessionID}", s.HandleGetSession)
	r.Delete("/session/{sessionID}", s.HandleDeleteSession)
	r.With(generateMiddleware...).Post("/session/{sessionID}/generate", s.HandleGenerate)
	r.Post("/session/{sessionID}/history/{index}/select", s.HandleSelectHistory)
	r.Delete("/session/{sessionID}/history/{index}", s.HandleRemoveHistory)

	return r
}
