package http

import (
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	// photosDir is served under store.LocalPhotosPath when photos are kept
	// on the local disk. Empty when an S3 bucket is configured.
	photosDir      string
	maxUploadBytes int64
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		validator:      validator,
		maxUploadBytes: cfg.Server.MaxUploadBytes,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
	if cfg.Storage.Photos.S3Bucket == "" {
		h.photosDir = cfg.Storage.Photos.Dir
	}

	logger.Info().Str("photos_dir", h.photosDir).Msg("http handler created")
	return h
}
