package service

import (
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/mailer"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/models"
)

type Services struct {
	AuthService        AuthService
	ActionTokenService ActionTokenService
	PropertyService    PropertyService
	ProfileService     ProfileService
	CatalogService     CatalogService
	AppInfoService     AppInfoService
}

func NewServices(storages *store.Storages, m mailer.Mailer, codec TokenCodec, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	actionTokens := NewActionTokenService(storages.UserRepository, codec, m, cfg.App, logger)

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, actionTokens, codec, cfg.App, logger),
		ActionTokenService: actionTokens,
		PropertyService:    NewPropertyService(storages.PropertyRepository, storages.PhotoStorage, logger),
		ProfileService:     NewProfileService(storages.ProfileRepository, storages.PropertyRepository, logger),
		CatalogService:     NewCatalogService(storages.CatalogRepository, logger),
		AppInfoService:     appInfo,
	}, nil
}
