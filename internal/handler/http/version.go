package http

import (
	"net/http"

	"github.com/go-chi/render"
)

const landingPage = "<h1>Hello there!</h1><p>You should not be here, unless you know what you're doing.<br />" +
	"And if you know what you're doing, then why are you here?<br />" +
	"Anyways, don't come back here, to this page.</p><p>Move along...</p>"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
}

func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	render.HTML(w, r, landingPage)
}
