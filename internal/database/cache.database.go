package database

import (
	"context"
	"fmt"
	"roomboard/config"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CACHE_INDEX is the valkey logical database the board state and events use.
const CACHE_INDEX = 0

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Error("failed to initialize cache database", "reason", "address or port is empty")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
		SelectDB:    CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create valkey client", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return log.Err("failed to ping valkey", err)
	}

	s.Cache = client
	return nil
}

// FlushCache clears the state database; used by the seed command.
func (s *DB) FlushCache(ctx context.Context) error {
	log := s.log.Function("FlushCache")
	if s.Cache == nil {
		return nil
	}

	if err := s.Cache.Do(ctx, s.Cache.B().Flushdb().Build()).Error(); err != nil {
		return log.Err("failed to flush cache database", err)
	}

	log.Info("Flushed cache database")
	return nil
}
