// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"github.com/redis/go-redis/v9"
)

const catalogsCacheKey = "fasthome:catalogs"

// NewRedisClient opens a client for cfg.RedisURL. It returns nil when the
// cache is disabled.
func NewRedisClient(cfg config.Cache) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	return redis.NewClient(opts), nil
}

// cachedCatalogRepository serves catalogs from Redis and falls back to the
// wrapped repository on a miss. Cache errors never fail the request.
type cachedCatalogRepository struct {
	next  CatalogRepository
	redis *redis.Client
	ttl   time.Duration

	logger *logger.Logger
}

// NewCachedCatalogRepository wraps next with a read-through Redis cache
// whose entries live for ttl.
func NewCachedCatalogRepository(next CatalogRepository, client *redis.Client, ttl time.Duration, logger *logger.Logger) CatalogRepository {
	logger.Debug().Dur("ttl", ttl).Msg("creating cached catalog repository")
	return &cachedCatalogRepository{next: next, redis: client, ttl: ttl, logger: logger}
}

func (r *cachedCatalogRepository) GetCatalogs(ctx context.Context) (models.Catalogs, error) {
	log := logger.FromContext(ctx)

	cached, err := r.redis.Get(ctx, catalogsCacheKey).Bytes()
	switch {
	case err == nil:
		var catalogs models.Catalogs
		if err = json.Unmarshal(cached, &catalogs); err == nil {
			return catalogs, nil
		}
		log.Warn().Err(err).Str("func", "*cachedCatalogRepository.GetCatalogs").Msg("dropping undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("func", "*cachedCatalogRepository.GetCatalogs").Msg("catalog cache unavailable")
	}

	catalogs, err := r.next.GetCatalogs(ctx)
	if err != nil {
		return models.Catalogs{}, err
	}

	if encoded, err := json.Marshal(catalogs); err == nil {
		if err = r.redis.Set(ctx, catalogsCacheKey, encoded, r.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("func", "*cachedCatalogRepository.GetCatalogs").Msg("error caching catalogs")
		}
	}

	return catalogs, nil
}
