package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
)

// LocalPhotosPath is the URL prefix the HTTP server serves the local photo
// directory under.
const LocalPhotosPath = "/photos"

type localPhotoStorage struct {
	dir       string
	publicURL string
	logger    *logger.Logger
}

// NewLocalPhotoStorage builds a [PhotoStorage] writing files into cfg.Dir.
func NewLocalPhotoStorage(cfg config.Photos, log *logger.Logger) (PhotoStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		log.Err(err).Str("func", "NewLocalPhotoStorage").Msg("error creating photo directory")
		return nil, fmt.Errorf("error creating photo directory: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = LocalPhotosPath
	}

	return &localPhotoStorage{
		dir:       cfg.Dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    log,
	}, nil
}

// Save writes the photo to dir/key and returns its public URL.
func (s *localPhotoStorage) Save(ctx context.Context, key string, upload models.PhotoUpload) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, upload.Content, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localPhotoStorage.Save").Str("key", key).Msg("error writing photo")
		return "", fmt.Errorf("%w: %w", ErrPhotoNotStored, err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes dir/key. A missing file is not an error.
func (s *localPhotoStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*localPhotoStorage.Delete").Str("key", key).Msg("error deleting photo")
		return fmt.Errorf("error deleting photo %s: %w", key, err)
	}
	return nil
}

// path keeps keys inside dir.
func (s *localPhotoStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: invalid key %q", ErrPhotoNotStored, key)
	}
	return filepath.Join(s.dir, key), nil
}
