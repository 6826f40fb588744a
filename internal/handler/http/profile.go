package http

import (
	"net/http"
)

func (h *Handler) listOwnProperties(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		writeError(w, r, err, "protected route without principal")
		return
	}

	filters, err := h.parseFilters(r)
	if err != nil {
		writeError(w, r, err, "invalid property filters")
		return
	}

	list, err := h.services.ProfileService.ListOwnProperties(r.Context(), userID, filters)
	if err != nil {
		writeError(w, r, err, "error listing own properties")
		return
	}

	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) getUserDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid user id")
		return
	}

	details, err := h.services.ProfileService.GetUserDetails(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "error getting user details")
		return
	}

	writeJSON(w, r, details, http.StatusOK)
}
