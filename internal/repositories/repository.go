package repositories

import (
	"roomboard/internal/store"
)

type Repository struct {
	Room         RoomRepository
	History      HistoryRepository
	User         UserRepository
	Notification NotificationRepository
}

func New(s store.Store) Repository {
	return Repository{
		Room:         NewRoomRepository(s),
		History:      NewHistoryRepository(s),
		User:         NewUserRepository(s),
		Notification: NewNotificationRepository(s),
	}
}
