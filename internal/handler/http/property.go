package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/models"
)

func (h *Handler) listProperties(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		writeError(w, r, err, "invalid property filters")
		return
	}

	list, err := h.services.PropertyService.ListProperties(r.Context(), filters)
	if err != nil {
		writeError(w, r, err, "error listing properties")
		return
	}

	writeJSON(w, r, list, http.StatusOK)
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid property id")
		return
	}

	property, err := h.services.PropertyService.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "error getting property")
		return
	}

	writeJSON(w, r, property, http.StatusOK)
}

func (h *Handler) createProperty(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		writeError(w, r, err, "protected route without principal")
		return
	}

	var req models.PropertyRequest
	if err = h.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, "invalid property")
		return
	}

	id, err := h.services.PropertyService.CreateProperty(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "error creating property")
		return
	}

	writeJSON(w, r, models.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		writeError(w, r, err, "protected route without principal")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid property id")
		return
	}

	var update models.PropertyUpdate
	if err = h.decodeAndValidate(r, &update); err != nil {
		writeError(w, r, err, "invalid property update")
		return
	}

	if err = h.services.PropertyService.UpdateProperty(r.Context(), userID, id, update); err != nil {
		writeError(w, r, err, "error updating property")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		writeError(w, r, err, "protected route without principal")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid property id")
		return
	}

	if err = h.services.PropertyService.DeleteProperty(r.Context(), userID, id); err != nil {
		writeError(w, r, err, "error deleting property")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// addPhotos accepts a multipart form with an optional "main" file and up to
// five "photos" files.
func (h *Handler) addPhotos(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		writeError(w, r, err, "protected route without principal")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid property id")
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err = r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: %w", ErrUploadTooLarge, err)
		} else {
			err = fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
		}
		writeError(w, r, err, "error reading photo upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	mainFiles := r.MultipartForm.File["main"]
	if len(mainFiles) > service.MaxMainPhotos {
		writeError(w, r, invalidFields("main"), "too many main photos")
		return
	}
	photoFiles := r.MultipartForm.File["photos"]
	if len(photoFiles) > service.MaxExtraPhotos {
		writeError(w, r, invalidFields("photos"), "too many photos")
		return
	}

	var main *models.PhotoUpload
	if len(mainFiles) == 1 {
		upload, err := readUpload(mainFiles[0])
		if err != nil {
			writeError(w, r, err, "error reading main photo")
			return
		}
		main = &upload
	}

	photos := make([]models.PhotoUpload, 0, len(photoFiles))
	for _, fh := range photoFiles {
		upload, err := readUpload(fh)
		if err != nil {
			writeError(w, r, err, "error reading photo")
			return
		}
		photos = append(photos, upload)
	}

	stored, err := h.services.PropertyService.AddPhotos(r.Context(), userID, id, main, photos)
	if err != nil {
		writeError(w, r, err, "error adding photos")
		return
	}

	logger.FromRequest(r).Info().Int64("property_id", id).Int("count", len(stored)).Msg("photos uploaded")
	writeJSON(w, r, stored, http.StatusCreated)
}

// readUpload loads a multipart file into memory. A missing or generic
// content type is replaced by the sniffed one.
func readUpload(fh *multipart.FileHeader) (models.PhotoUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return models.PhotoUpload{}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.PhotoUpload{}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}

	return models.PhotoUpload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}
