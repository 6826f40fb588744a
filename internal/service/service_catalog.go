package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/models"
)

type catalogService struct {
	catalogs store.CatalogRepository

	logger *logger.Logger
}

func NewCatalogService(catalogs store.CatalogRepository, logger *logger.Logger) CatalogService {
	return &catalogService{
		catalogs: catalogs,
		logger:   logger,
	}
}

func (s *catalogService) GetCatalogs(ctx context.Context) (models.Catalogs, error) {
	catalogs, err := s.catalogs.GetCatalogs(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogService.GetCatalogs").Msg("error getting catalogs")
		return models.Catalogs{}, fmt.Errorf("error getting catalogs: %w", err)
	}

	return catalogs, nil
}
