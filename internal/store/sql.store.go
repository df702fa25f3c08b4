package store

import (
	"context"
	"errors"
	"roomboard/internal/logger"
	. "roomboard/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps each key as a row of state_entries.
type SQLStore struct {
	db  *gorm.DB
	log logger.Logger
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, log: logger.New("sqlStore")}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := s.log.Function("Get")

	entry, err := gorm.G[StateEntry](s.db).Where("key = ?", key).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, log.Err("failed to read state entry", err, "key", key)
	}

	return []byte(entry.Value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	log := s.log.Function("Set")

	entry := StateEntry{Key: key, Value: datatypes.JSON(value)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return log.Err("failed to upsert state entry", err, "key", key)
	}

	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	log := s.log.Function("Delete")

	if _, err := gorm.G[StateEntry](s.db).Where("key = ?", key).Delete(ctx); err != nil {
		return log.Err("failed to delete state entry", err, "key", key)
	}

	return nil
}
