// Package store is the persisted key-value state the board components write
// through to. Values are JSON documents keyed by a fixed set of names.
package store

import (
	"context"
	"encoding/json"
	"roomboard/internal/logger"
)

const (
	KeyRooms         = "rooms"
	KeyHistory       = "room_history"
	KeyUsers         = "users"
	KeySession       = "session"
	KeyNotifications = "notifications"
)

type Store interface {
	// Get returns the stored value; found is false when the key is missing.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes key into a T. Missing keys, read failures and unparsable
// values all yield fallback; the failure is logged and never returned.
func LoadJSON[T any](ctx context.Context, s Store, key string, fallback T) T {
	log := logger.NewWithContext(ctx, "store").Function("LoadJSON")

	data, found, err := s.Get(ctx, key)
	if err != nil {
		log.Warn("failed to read persisted state, using default", "key", key, "error", err)
		return fallback
	}

	if !found || len(data) == 0 {
		return fallback
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn("persisted state is corrupt, using default", "key", key, "error", err)
		return fallback
	}

	return value
}

func SaveJSON(ctx context.Context, s Store, key string, value any) error {
	log := logger.NewWithContext(ctx, "store").Function("SaveJSON")

	data, err := json.Marshal(value)
	if err != nil {
		return log.Err("failed to marshal state", err, "key", key)
	}

	if err := s.Set(ctx, key, data); err != nil {
		return log.Err("failed to persist state", err, "key", key)
	}

	return nil
}
