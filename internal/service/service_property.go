package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/utils"
	"github.com/MKhiriev/fast-home/models"
)

// Upload limits of a single images request.
const (
	MaxMainPhotos  = 1
	MaxExtraPhotos = 5
)

// photoExtensions maps accepted content types to the extension of the
// stored object.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type propertyService struct {
	properties store.PropertyRepository
	photos     store.PhotoStorage
	keys       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewPropertyService(properties store.PropertyRepository, photos store.PhotoStorage, logger *logger.Logger) PropertyService {
	return &propertyService{
		properties: properties,
		photos:     photos,
		keys:       utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

func (s *propertyService) ListProperties(ctx context.Context, filters models.PropertyFilters) ([]models.BasicProperty, error) {
	list, err := s.properties.ListProperties(ctx, filters)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*propertyService.ListProperties").Any("filters", filters).Msg("error listing properties")
		return nil, fmt.Errorf("error listing properties: %w", err)
	}

	return list, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID int64) (models.Property, error) {
	property, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*propertyService.GetProperty").Int64("property_id", propertyID).Msg("error getting property")
		return models.Property{}, fmt.Errorf("error getting property: %w", err)
	}

	return property, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, userID int64, req models.PropertyRequest) (int64, error) {
	id, err := s.properties.CreateProperty(ctx, userID, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*propertyService.CreateProperty").Int64("user_id", userID).Msg("error creating property")
		return 0, fmt.Errorf("error creating property: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Int64("property_id", id).Msg("property created")
	return id, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, userID, propertyID int64, update models.PropertyUpdate) error {
	if update.IsEmpty() {
		return ErrEmptyUpdate
	}
	if err := s.checkOwner(ctx, userID, propertyID); err != nil {
		return err
	}

	affected, err := s.properties.UpdateProperty(ctx, propertyID, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*propertyService.UpdateProperty").Int64("property_id", propertyID).Msg("error updating property")
		return fmt.Errorf("error updating property: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("error updating property: %w", store.ErrPropertyNotFound)
	}

	return nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, userID, propertyID int64) error {
	if err := s.checkOwner(ctx, userID, propertyID); err != nil {
		return err
	}

	affected, err := s.properties.DeleteProperty(ctx, propertyID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*propertyService.DeleteProperty").Int64("property_id", propertyID).Msg("error deleting property")
		return fmt.Errorf("error deleting property: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("error deleting property: %w", store.ErrPropertyNotFound)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Int64("property_id", propertyID).Msg("property deleted")
	return nil
}

func (s *propertyService) AddPhotos(ctx context.Context, userID, propertyID int64, main *models.PhotoUpload, photos []models.PhotoUpload) ([]models.Photo, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*propertyService.AddPhotos").
		Int64("property_id", propertyID).
		Logger()

	if main == nil && len(photos) == 0 {
		return nil, ErrNoPhotos
	}
	if len(photos) > MaxExtraPhotos {
		return nil, fmt.Errorf("%w: at most %d photos are allowed", ErrTooManyPhotos, MaxExtraPhotos)
	}

	uploads := make([]models.PhotoUpload, 0, len(photos)+1)
	if main != nil {
		uploads = append(uploads, *main)
	}
	uploads = append(uploads, photos...)
	for _, upload := range uploads {
		if _, ok := photoExtensions[normalizeContentType(upload.ContentType)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrPhotoType, upload.ContentType)
		}
	}

	if err := s.checkOwner(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	stored := make([]models.Photo, 0, len(uploads))
	keys := make([]string, 0, len(uploads))
	for i, upload := range uploads {
		key := s.keys.Generate() + photoExtensions[normalizeContentType(upload.ContentType)]
		url, err := s.photos.Save(ctx, key, upload)
		if err != nil {
			log.Err(err).Str("file", upload.FileName).Msg("error saving photo")
			s.discard(ctx, keys)
			return nil, fmt.Errorf("error saving photo %q: %w", upload.FileName, err)
		}
		keys = append(keys, key)
		stored = append(stored, models.Photo{
			URL:    url,
			IsMain: main != nil && i == 0,
		})
	}

	if err := s.properties.AddPhotos(ctx, propertyID, stored); err != nil {
		log.Err(err).Msg("error attaching photos")
		s.discard(ctx, keys)
		return nil, fmt.Errorf("error attaching photos: %w", err)
	}

	log.Info().Int("count", len(stored)).Bool("main", main != nil).Msg("photos added")
	return stored, nil
}

// checkOwner loads the vendor of propertyID and compares it to userID.
func (s *propertyService) checkOwner(ctx context.Context, userID, propertyID int64) error {
	owner, err := s.properties.GetPropertyOwner(ctx, propertyID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("property_id", propertyID).Msg("error getting property owner")
		return fmt.Errorf("error getting property owner: %w", err)
	}
	if owner != userID {
		logger.FromContext(ctx).Warn().Int64("user_id", userID).Int64("property_id", propertyID).Msg("user is not the owner")
		return ErrNotOwner
	}

	return nil
}

// discard removes objects saved before a failure. Errors are only logged.
func (s *propertyService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.photos.Delete(ctx, key); err != nil && !errors.Is(err, context.Canceled) {
			logger.FromContext(ctx).Err(err).Str("key", key).Msg("error discarding photo")
		}
	}
}

func normalizeContentType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
