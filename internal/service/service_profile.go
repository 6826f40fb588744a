package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/models"
)

type profileService struct {
	profiles   store.ProfileRepository
	properties store.PropertyRepository

	logger *logger.Logger
}

func NewProfileService(profiles store.ProfileRepository, properties store.PropertyRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profiles:   profiles,
		properties: properties,
		logger:     logger,
	}
}

func (s *profileService) GetUserDetails(ctx context.Context, userID int64) (models.UserDetails, error) {
	details, err := s.profiles.GetUserDetails(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.GetUserDetails").Int64("user_id", userID).Msg("error getting user details")
		return models.UserDetails{}, fmt.Errorf("error getting user details: %w", err)
	}

	return details, nil
}

// ListOwnProperties lists the properties of userID. Any vendor already set
// in filters is overwritten.
func (s *profileService) ListOwnProperties(ctx context.Context, userID int64, filters models.PropertyFilters) ([]models.BasicProperty, error) {
	filters.VendorUserID = userID

	list, err := s.properties.ListProperties(ctx, filters)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.ListOwnProperties").Int64("user_id", userID).Msg("error listing own properties")
		return nil, fmt.Errorf("error listing own properties: %w", err)
	}

	return list, nil
}
