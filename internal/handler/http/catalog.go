package http

import "net/http"

func (h *Handler) getCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.services.CatalogService.GetCatalogs(r.Context())
	if err != nil {
		writeError(w, r, err, "error getting catalogs")
		return
	}

	writeJSON(w, r, catalogs, http.StatusOK)
}
