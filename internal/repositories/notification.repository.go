package repositories

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/store"
)

type NotificationRepository interface {
	// Load returns the shared notification log of every user.
	Load(ctx context.Context) []PersistentNotification
	Save(ctx context.Context, notifications []PersistentNotification) error
}

type notificationRepository struct {
	store store.Store
	log   logger.Logger
}

func NewNotificationRepository(s store.Store) NotificationRepository {
	return &notificationRepository{
		store: s,
		log:   logger.New("notificationRepository"),
	}
}

func (r *notificationRepository) Load(ctx context.Context) []PersistentNotification {
	return store.LoadJSON(ctx, r.store, store.KeyNotifications, []PersistentNotification{})
}

func (r *notificationRepository) Save(
	ctx context.Context,
	notifications []PersistentNotification,
) error {
	log := r.log.Function("Save")

	if err := store.SaveJSON(ctx, r.store, store.KeyNotifications, notifications); err != nil {
		return log.Err("failed to save notifications", err, "count", len(notifications))
	}

	return nil
}
