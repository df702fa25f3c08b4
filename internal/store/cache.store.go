package store

import (
	"context"
	"roomboard/internal/database"
	"roomboard/internal/logger"

	"github.com/valkey-io/valkey-go"
)

const CACHE_STORE_HASH = "roomboard"

// CacheStore keeps state in valkey without expiry.
type CacheStore struct {
	cache valkey.Client
	log   logger.Logger
}

func NewCacheStore(cache valkey.Client) *CacheStore {
	return &CacheStore{cache: cache, log: logger.New("cacheStore")}
}

func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		WithHash(CACHE_STORE_HASH).
		GetString()
	if err != nil {
		return nil, false, s.log.Function("Get").Err("failed to read state from cache", err, "key", key)
	}
	if !found {
		return nil, false, nil
	}
	return []byte(data), true, nil
}

func (s *CacheStore) Set(ctx context.Context, key string, value []byte) error {
	err := database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		WithHash(CACHE_STORE_HASH).
		WithValue(string(value)).
		Set()
	if err != nil {
		return s.log.Function("Set").Err("failed to write state to cache", err, "key", key)
	}
	return nil
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	err := database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		WithHash(CACHE_STORE_HASH).
		Delete()
	if err != nil {
		return s.log.Function("Delete").Err("failed to delete state from cache", err, "key", key)
	}
	return nil
}
