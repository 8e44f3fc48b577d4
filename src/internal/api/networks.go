package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// networkIDParam returns the {id} URL parameter, writing a 400 when it is
// not a network id.
func networkIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !network.IsNetworkID(id) {
		WriteInvalidRequest(w, "network id must be 16 hexadecimal characters")
		return "", false
	}
	return id, true
}

// decodeNetwork decodes a network configuration from the request body on
// top of network.Default, so omitted fields keep their defaults.
func decodeNetwork(w http.ResponseWriter, r *http.Request) (*network.Network, bool) {
	n := network.Default()
	if err := decodeJSON(r, n); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return nil, false
	}
	return n, true
}

// ValidateNetwork runs the full validation pipeline without contacting the
// controller.
// POST /api/v1/validate
func (h *Handler) ValidateNetwork(w http.ResponseWriter, r *http.Request) {
	n, ok := decodeNetwork(w, r)
	if !ok {
		return
	}

	if err := n.Validate(); err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, ValidateResponse{Valid: true, Network: n})
}

// GetNetworks returns the ids of all networks hosted by the controller.
// GET /api/v1/networks
func (h *Handler) GetNetworks(w http.ResponseWriter, r *http.Request) {
	ids, err := h.deps.ControllerClient().ListNetworks(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeJSONData(w, NetworksResponse{Networks: ids})
}

// CreateNetwork validates and creates a new network.
// POST /api/v1/networks
func (h *Handler) CreateNetwork(w http.ResponseWriter, r *http.Request) {
	n, ok := decodeNetwork(w, r)
	if !ok {
		return
	}

	created, err := h.deps.ControllerClient().Create(r.Context(), n)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeCreated(w, NetworkResponse{Network: created})
}

// GetNetwork returns one network.
// GET /api/v1/networks/{id}
func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := networkIDParam(w, r)
	if !ok {
		return
	}

	n, err := h.deps.ControllerClient().Fetch(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, NetworkResponse{Network: n})
}

// UpdateNetwork validates and replaces the configuration of a network.
// PUT /api/v1/networks/{id}
func (h *Handler) UpdateNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := networkIDParam(w, r)
	if !ok {
		return
	}

	n, ok := decodeNetwork(w, r)
	if !ok {
		return
	}

	if bodyID := n.NetworkID(); bodyID != "" && bodyID != id {
		WriteInvalidRequest(w, "network id in body does not match URL")
		return
	}
	n.ID = &id
	n.SetNetworkID(id)

	updated, err := h.deps.ControllerClient().Update(r.Context(), n)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, NetworkResponse{Network: updated})
}

// DeleteNetwork removes a network.
// DELETE /api/v1/networks/{id}
func (h *Handler) DeleteNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := networkIDParam(w, r)
	if !ok {
		return
	}

	if err := h.deps.ControllerClient().Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}

	writeNoContent(w)
}
