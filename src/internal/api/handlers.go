package api

import (
	"encoding/json"
	"net/http"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	"github.com/maksimkurb/ztproxy/src/internal/log"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	deps         *domain.AppDependencies
	configHasher *config.ConfigHasher
	version      VersionInfo
}

// NewHandler creates a new API handler. configHasher may be nil, in which
// case /health does not report configuration changes.
func NewHandler(deps *domain.AppDependencies, configHasher *config.ConfigHasher, version VersionInfo) *Handler {
	return &Handler{
		deps:         deps,
		configHasher: configHasher,
		version:      version,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to encode response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// writeCreated writes a 201 Created response with data.
func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

// writeNoContent writes a 204 No Content response.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
