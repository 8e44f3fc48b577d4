package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// LocalOnly restricts clients to loopback and private ranges.
	LocalOnly bool

	// ConfigHasher enables configuration change reporting on /health.
	ConfigHasher *config.ConfigHasher

	Version VersionInfo
}

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(deps *domain.AppDependencies, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	if opts.LocalOnly {
		r.Use(LocalOnly)
	}
	r.Use(JSONContentType)

	h := NewHandler(deps, opts.ConfigHasher, opts.Version)

	r.Get("/health", h.CheckHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", h.ValidateNetwork)

		// Networks endpoints
		r.Get("/networks", h.GetNetworks)
		r.Post("/networks", h.CreateNetwork)
		r.Get("/networks/{id}", h.GetNetwork)
		r.Put("/networks/{id}", h.UpdateNetwork)
		r.Delete("/networks/{id}", h.DeleteNetwork)

		// Members endpoints
		r.Get("/networks/{id}/members", h.GetMembers)
		r.Put("/networks/{id}/members/{member}", h.AuthorizeMember)
		r.Delete("/networks/{id}/members/{member}", h.DeauthorizeMember)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Endpoint")
	})

	return r
}
