package repositories

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/store"
)

type RoomRepository interface {
	// Load returns the persisted board, or an empty board when nothing usable is stored.
	Load(ctx context.Context) []Room
	Save(ctx context.Context, rooms []Room) error
}

type roomRepository struct {
	store store.Store
	log   logger.Logger
}

func NewRoomRepository(s store.Store) RoomRepository {
	return &roomRepository{
		store: s,
		log:   logger.New("roomRepository"),
	}
}

func (r *roomRepository) Load(ctx context.Context) []Room {
	rooms := store.LoadJSON(ctx, r.store, store.KeyRooms, []Room{})
	return CloneRooms(rooms)
}

func (r *roomRepository) Save(ctx context.Context, rooms []Room) error {
	log := r.log.Function("Save")

	if err := store.SaveJSON(ctx, r.store, store.KeyRooms, CloneRooms(rooms)); err != nil {
		return log.Err("failed to save rooms", err, "count", len(rooms))
	}

	return nil
}
