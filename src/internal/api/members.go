package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/ztproxy/src/internal/controller"
)

// GetMembers lists the members of a network.
// GET /api/v1/networks/{id}/members
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := networkIDParam(w, r)
	if !ok {
		return
	}

	members, err := h.deps.ControllerClient().ListMembers(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if members == nil {
		members = map[string]uint64{}
	}

	writeJSONData(w, MembersResponse{Members: members})
}

// AuthorizeMember allows a member onto the network.
// PUT /api/v1/networks/{id}/members/{member}
func (h *Handler) AuthorizeMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberAuthorization(w, r, true)
}

// DeauthorizeMember revokes a member's access.
// DELETE /api/v1/networks/{id}/members/{member}
func (h *Handler) DeauthorizeMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberAuthorization(w, r, false)
}

func (h *Handler) setMemberAuthorization(w http.ResponseWriter, r *http.Request, authorized bool) {
	id, ok := networkIDParam(w, r)
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "member")
	if !controller.IsMemberID(memberID) {
		WriteInvalidRequest(w, "member id must be 10 hexadecimal characters")
		return
	}

	client := h.deps.ControllerClient()
	var (
		member *controller.Member
		err    error
	)
	if authorized {
		member, err = client.Authorize(r.Context(), id, memberID)
	} else {
		member, err = client.Deauthorize(r.Context(), id, memberID)
	}
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, MemberResponse{Member: member})
}
