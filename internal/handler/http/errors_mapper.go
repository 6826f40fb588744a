package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/utils"
	"github.com/MKhiriev/fast-home/internal/validators"
)

// errorStatusMap holds disjoint error chains: no error returned by the
// services wraps two keys with different statuses.
var errorStatusMap = map[error]int{
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrInvalidMultipart: http.StatusBadRequest,
	ErrUploadTooLarge:   http.StatusRequestEntityTooLarge,

	service.ErrActionTokenRejected: http.StatusUnauthorized,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrEmailNotVerified:    http.StatusUnauthorized,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrClientMisuse:        http.StatusBadRequest,
	service.ErrNotOwner:            http.StatusForbidden,
	service.ErrEmptyUpdate:         http.StatusBadRequest,
	service.ErrNoPhotos:            http.StatusBadRequest,
	service.ErrTooManyPhotos:       http.StatusBadRequest,
	service.ErrPhotoType:           http.StatusUnsupportedMediaType,

	store.ErrUserAlreadyExists:   http.StatusConflict,
	store.ErrUserNotFound:        http.StatusNotFound,
	store.ErrPropertyNotFound:    http.StatusNotFound,
	store.ErrUserDetailsNotFound: http.StatusNotFound,
	store.ErrUnknownReference:    http.StatusBadRequest,
}

func statusFromError(err error) int {
	if _, ok := validators.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Validation
// failures are answered with their field lists; everything else with the
// bare status text, so token rejections never reveal which check failed.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Info().Err(err).Int("status", status).Msg(msg)
	}

	if vErr, ok := validators.AsValidationError(err); ok {
		utils.WriteJSON(w, vErr, http.StatusBadRequest)
		return
	}

	text := http.StatusText(status)
	if errors.Is(err, service.ErrClientMisuse) {
		text = bearerMisuseHint
	}
	http.Error(w, text, status)
}
