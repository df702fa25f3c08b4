package repositories

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/store"
)

type HistoryRepository interface {
	Load(ctx context.Context) []HistoryEntry
	Save(ctx context.Context, entries []HistoryEntry) error
}

type historyRepository struct {
	store store.Store
	log   logger.Logger
}

func NewHistoryRepository(s store.Store) HistoryRepository {
	return &historyRepository{
		store: s,
		log:   logger.New("historyRepository"),
	}
}

func (r *historyRepository) Load(ctx context.Context) []HistoryEntry {
	entries := store.LoadJSON(ctx, r.store, store.KeyHistory, []HistoryEntry{})
	return cloneHistory(entries)
}

func (r *historyRepository) Save(ctx context.Context, entries []HistoryEntry) error {
	log := r.log.Function("Save")

	if err := store.SaveJSON(ctx, r.store, store.KeyHistory, entries); err != nil {
		return log.Err("failed to save room history", err, "count", len(entries))
	}

	return nil
}

func cloneHistory(entries []HistoryEntry) []HistoryEntry {
	cloned := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		cloned = append(cloned, entry.Clone())
	}
	return cloned
}
