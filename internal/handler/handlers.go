package handler

import (
	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/handler/http"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/service"
	"github.com/MKhiriev/fast-home/internal/validators"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, validator, cfg, logger),
	}, nil
}
