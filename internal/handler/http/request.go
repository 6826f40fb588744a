package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/utils"
	"github.com/MKhiriev/fast-home/internal/validators"
	"github.com/MKhiriev/fast-home/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// decodeAndValidate reads a JSON body into dst and validates it. An empty
// body decodes as an empty object so that required fields are reported as
// missing.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return h.validator.Validate(r.Context(), dst)
}

func invalidFields(fields ...string) *validators.ValidationError {
	return &validators.ValidationError{Invalid: fields, Missing: []string{}}
}

// pathID parses the positive integer URL parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidFields(name)
	}
	return id, nil
}

func principalID(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoPrincipal
	}
	return userID, nil
}

// parseFilters reads property list filters from the query string.
func (h *Handler) parseFilters(r *http.Request) (models.PropertyFilters, error) {
	query := r.URL.Query()
	invalid := []string{}

	readInt := func(name string) int64 {
		raw := query.Get(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			invalid = append(invalid, name)
			return 0
		}
		return n
	}

	filters := models.PropertyFilters{
		Bedrooms:  int(readInt("bedrooms")),
		Bathrooms: int(readInt("bathrooms")),
		Garage:    int(readInt("garage")),
		Floors:    int(readInt("floors")),
		Currency:  readInt("currency"),
		Order:     models.SortOrder(query.Get("order")),
	}
	if len(invalid) > 0 {
		return models.PropertyFilters{}, invalidFields(invalid...)
	}

	if err := h.validator.Validate(r.Context(), filters); err != nil {
		return models.PropertyFilters{}, err
	}
	return filters, nil
}

// writeJSON answers with data and logs encoding failures.
func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
