package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages bundles every repository and the photo backend used by the
// service layer.
type Storages struct {
	UserRepository     UserRepository
	PropertyRepository PropertyRepository
	ProfileRepository  ProfileRepository
	CatalogRepository  CatalogRepository
	PhotoStorage       PhotoStorage

	db    *DB
	cache *redis.Client
}

// NewStorages connects to PostgreSQL, applies migrations and builds the
// photo backend (S3 when a bucket is configured, local directory otherwise).
// Catalogs are cached in Redis when a cache URL is configured.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	var photos PhotoStorage
	if cfg.Photos.S3Bucket != "" {
		photos, err = NewS3PhotoStorage(ctx, cfg.Photos, log)
	} else {
		photos, err = NewLocalPhotoStorage(cfg.Photos, log)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache, err := NewRedisClient(cfg.Cache)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	storages := newStorages(db, photos, log)
	if cache != nil {
		storages.cache = cache
		storages.CatalogRepository = NewCachedCatalogRepository(storages.CatalogRepository, cache, cfg.Cache.CatalogTTL, log)
	}

	return storages, nil
}

func newStorages(db *DB, photos PhotoStorage, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		PropertyRepository: NewPropertyRepository(db, log),
		ProfileRepository:  NewProfileRepository(db, log),
		CatalogRepository:  NewCatalogRepository(db, log),
		PhotoStorage:       photos,
		db:                 db,
	}
}

// Close releases the database pool and the cache client.
func (s *Storages) Close() error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
