package http

import (
	"net/http"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, "invalid registration request")
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error during user registration")
		return
	}

	logger.FromRequest(r).Info().Int64("id", user.UserID).Msg("user registered")
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, "invalid login request")
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error during user login")
		return
	}

	writeJSON(w, r, result, http.StatusOK)
}

func (h *Handler) forgot(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, "invalid password recovery request")
		return
	}

	if _, err := h.services.ActionTokenService.BeginReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err, "error starting password recovery")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ActionTokenService.CompleteVerification(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeError(w, r, err, "email verification failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, "invalid password reset request")
		return
	}

	if err := h.services.ActionTokenService.CompleteReset(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
		writeError(w, r, err, "password reset failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}
