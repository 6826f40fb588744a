package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_PhotosDir(t *testing.T) {
	local := NewHandler(newTestServices(), validators.NewValidator(), config.StructuredConfig{
		Storage: config.Storage{Photos: config.Photos{Dir: "uploads"}},
	}, logger.Nop())
	assert.Equal(t, "uploads", local.photosDir)

	s3 := NewHandler(newTestServices(), validators.NewValidator(), config.StructuredConfig{
		Storage: config.Storage{Photos: config.Photos{Dir: "uploads", S3Bucket: "fast-home-photos"}},
	}, logger.Nop())
	assert.Empty(t, s3.photosDir)
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	rec := serve(newTestHandler(t, newTestServices()), http.MethodGet, "/api/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	// POST /api/version is not registered, only GET is.
	rec := serve(newTestHandler(t, newTestServices()), http.MethodPost, "/api/version", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_ServesLocalPhotos(t *testing.T) {
	h := newTestHandler(t, newTestServices())
	require.NoError(t, os.WriteFile(filepath.Join(h.photosDir, "a.png"), pngMagic, 0o644))

	req := httptest.NewRequest(http.MethodGet, "/photos/a.png", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, pngMagic, rec.Body.Bytes())
}

func TestInit_SetsTraceID(t *testing.T) {
	rec := serve(newTestHandler(t, newTestServices()), http.MethodGet, "/", "", map[string]string{traceIDHeader: "trace-123"})

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}
