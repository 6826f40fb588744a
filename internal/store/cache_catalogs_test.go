package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalogs struct {
	calls    int
	catalogs models.Catalogs
	err      error
}

func (c *countingCatalogs) GetCatalogs(context.Context) (models.Catalogs, error) {
	c.calls++
	return c.catalogs, c.err
}

var testCatalogs = models.Catalogs{
	Currencies: []string{models.CatalogPlaceholder, "USD", "PEN"},
	Contracts:  []string{models.CatalogPlaceholder, "Sale", "Rent"},
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedCatalogs_ReadThrough(t *testing.T) {
	mr, client := newTestCache(t)
	next := &countingCatalogs{catalogs: testCatalogs}
	repo := NewCachedCatalogRepository(next, client, time.Minute, logger.Nop())

	first, err := repo.GetCatalogs(context.Background())
	require.NoError(t, err)
	second, err := repo.GetCatalogs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testCatalogs, first)
	assert.Equal(t, testCatalogs, second)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists(catalogsCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(catalogsCacheKey))
}

func TestCachedCatalogs_Expiry(t *testing.T) {
	mr, client := newTestCache(t)
	next := &countingCatalogs{catalogs: testCatalogs}
	repo := NewCachedCatalogRepository(next, client, time.Minute, logger.Nop())

	_, err := repo.GetCatalogs(context.Background())
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = repo.GetCatalogs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCachedCatalogs_CorruptEntry(t *testing.T) {
	mr, client := newTestCache(t)
	require.NoError(t, mr.Set(catalogsCacheKey, "{not json"))
	next := &countingCatalogs{catalogs: testCatalogs}

	got, err := NewCachedCatalogRepository(next, client, time.Minute, logger.Nop()).GetCatalogs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testCatalogs, got)
	assert.Equal(t, 1, next.calls)
}

func TestCachedCatalogs_CacheDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	next := &countingCatalogs{catalogs: testCatalogs}

	got, err := NewCachedCatalogRepository(next, client, time.Minute, logger.Nop()).GetCatalogs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testCatalogs, got)
}

func TestCachedCatalogs_StoreErrorNotCached(t *testing.T) {
	mr, client := newTestCache(t)
	next := &countingCatalogs{err: ErrStoreUnavailable}

	_, err := NewCachedCatalogRepository(next, client, time.Minute, logger.Nop()).GetCatalogs(context.Background())

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, mr.Exists(catalogsCacheKey))
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(config.Cache{})
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewRedisClient(config.Cache{RedisURL: "redis://localhost:6379/2"})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, 2, client.Options().DB)
	_ = client.Close()

	_, err = NewRedisClient(config.Cache{RedisURL: "http://nope"})
	assert.Error(t, err)
}
