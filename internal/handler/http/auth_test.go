// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) (invalid, missing []string) {
	t.Helper()
	var body struct {
		Invalid []string `json:"invalid"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Invalid, body.Missing
}

// ─────────────────────────────────────────────
// POST /api/auth/register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	valid := `{"username":"testuser","password":"testpass","email":"test@example.net"}`

	tests := []struct {
		name        string
		body        string
		registerErr error
		wantStatus  int
		wantInvalid []string
		wantMissing []string
	}{
		{name: "created", body: valid, wantStatus: http.StatusCreated},
		{name: "missing password", body: `{"username":"testuser","email":"test@example.net"}`,
			wantStatus: http.StatusBadRequest, wantInvalid: []string{}, wantMissing: []string{"password"}},
		{name: "invalid email and missing username", body: `{"password":"testpass","email":"nope"}`,
			wantStatus: http.StatusBadRequest, wantInvalid: []string{"email"}, wantMissing: []string{"username"}},
		{name: "empty body", body: "",
			wantStatus: http.StatusBadRequest, wantInvalid: []string{}, wantMissing: []string{"username", "email", "password"}},
		{name: "broken json", body: `{"username":`, wantStatus: http.StatusBadRequest},
		{name: "multibyte password over 72 bytes",
			body:       `{"username":"testuser","email":"test@example.net","password":"` + strings.Repeat("é", 72) + `"}`,
			wantStatus: http.StatusBadRequest, wantInvalid: []string{"password"}, wantMissing: []string{}},
		{name: "duplicate", body: valid, registerErr: fmt.Errorf("user creation ended with error: %w", store.ErrUserAlreadyExists),
			wantStatus: http.StatusConflict},
		{name: "mail failure", body: valid, registerErr: fmt.Errorf("%w: smtp down", service.ErrMailNotAccepted),
			wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			var got models.RegisterRequest
			services.AuthService = &fakeAuthService{
				registerFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
					got = req
					return models.User{UserID: 1, Username: req.Username}, tt.registerErr
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodPost, "/api/auth/register", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMissing != nil {
				invalid, missing := decodeValidation(t, rec)
				assert.ElementsMatch(t, tt.wantInvalid, invalid)
				assert.ElementsMatch(t, tt.wantMissing, missing)
			}
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "testuser", got.Username)
				assert.Equal(t, "test@example.net", got.Email)
			}
		})
	}
}

// ─────────────────────────────────────────────
// POST /api/auth/login
// ─────────────────────────────────────────────

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
	}{
		{"ok", `{"username":"testuser","password":"testpass"}`, nil, http.StatusOK},
		{"wrong credentials", `{"username":"testuser","password":"bad"}`, service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unverified", `{"username":"testuser","password":"testpass"}`, service.ErrEmailNotVerified, http.StatusUnauthorized},
		{"store down", `{"username":"testuser","password":"testpass"}`, store.ErrStoreUnavailable, http.StatusInternalServerError},
		{"missing password", `{"username":"testuser"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.AuthService = &fakeAuthService{
				loginFn: func(context.Context, models.LoginRequest) (models.LoginResult, error) {
					if tt.loginErr != nil {
						return models.LoginResult{}, tt.loginErr
					}
					return models.LoginResult{Token: "eyJ.session.token"}, nil
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodPost, "/api/auth/login", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"token":"eyJ.session.token"}`, rec.Body.String())
			}
		})
	}
}

// ─────────────────────────────────────────────
// POST /api/auth/forgot
// ─────────────────────────────────────────────

func TestForgot(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		beginErr   error
		wantStatus int
	}{
		{"sent", `{"email":"test@example.net"}`, nil, http.StatusOK},
		{"unknown email", `{"email":"ghost@example.net"}`, fmt.Errorf("error finding user to reset: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"mail failure", `{"email":"test@example.net"}`, fmt.Errorf("%w: refused", service.ErrMailNotAccepted), http.StatusInternalServerError},
		{"invalid email", `{"email":"nope"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.ActionTokenService = &fakeActionTokenService{
				beginResetFn: func(_ context.Context, email string) (string, error) {
					return "https://fasthome.test/api/auth/reset/x", tt.beginErr
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodPost, "/api/auth/forgot", tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// GET /api/auth/verify/{token}, POST /api/auth/reset/{token}
// ─────────────────────────────────────────────

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"verified", nil, http.StatusOK},
		{"rejected", fmt.Errorf("%w: expired", service.ErrActionTokenRejected), http.StatusUnauthorized},
		{"store failure", errors.New("error consuming token fragment: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			var gotToken string
			services.ActionTokenService = &fakeActionTokenService{
				completeVerificationFn: func(_ context.Context, raw string) error {
					gotToken = raw
					return tt.err
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodGet, "/api/auth/verify/aaa.bbb.ccc", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "aaa.bbb.ccc", gotToken)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotContains(t, rec.Body.String(), "expired", "rejection reason must not leak")
			}
		})
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"reset", `{"password":"new-password"}`, nil, http.StatusOK},
		{"rejected", `{"password":"new-password"}`, service.ErrActionTokenRejected, http.StatusUnauthorized},
		{"short password", `{"password":"short"}`, nil, http.StatusBadRequest},
		{"missing password", `{}`, nil, http.StatusBadRequest},
		{"multibyte password over 72 bytes", `{"password":"` + strings.Repeat("é", 72) + `"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			called := false
			services.ActionTokenService = &fakeActionTokenService{
				completeResetFn: func(_ context.Context, raw, password string) error {
					called = true
					assert.Equal(t, "aaa.bbb.ccc", raw)
					assert.Equal(t, "new-password", password)
					return tt.err
				},
			}

			rec := serve(newTestHandler(t, services), http.MethodPost, "/api/auth/reset/aaa.bbb.ccc", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus != http.StatusBadRequest, called)
		})
	}
}
