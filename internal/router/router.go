// Package router sets up all HTTP routes and middleware chains for the
// mdpress server. It organizes routes into public and authoring groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mdpress/internal/handlers"
	"mdpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. authorKeyHash guards the authoring API.
func New(public *handlers.Public, author *handlers.Author, authorKeyHash string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Authoring API — bearer key required.
	r.Route("/author/documents", func(r chi.Router) {
		r.Use(middleware.RequireAuthorKey(authorKeyHash))

		r.Get("/", author.List)
		r.Post("/", author.Create)
		r.Put("/{id}", author.Update)
		r.Delete("/{id}", author.Delete)
	})

	// Public site — rendered documents.
	r.Get("/{slug}", public.Document)
	r.Get("/{slug}/outline", public.Outline)

	return r
}

// healthHandler responds to health checks.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
