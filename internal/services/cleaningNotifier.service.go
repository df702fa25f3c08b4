package services

import (
	"context"
	"fmt"
	"roomboard/internal/events"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
)

type AdminDirectory interface {
	AdminUsernames(ctx context.Context) []string
}

type NotificationSender interface {
	Enqueue(
		ctx context.Context,
		message string,
		notificationType NotificationType,
		userID string,
	) (PersistentNotification, error)
}

// CleaningNotifier tells every admin when a room has been cleaned.
type CleaningNotifier struct {
	admins        AdminDirectory
	notifications NotificationSender
	log           logger.Logger
}

func NewCleaningNotifier(admins AdminDirectory, notifications NotificationSender) *CleaningNotifier {
	return &CleaningNotifier{
		admins:        admins,
		notifications: notifications,
		log:           logger.New("CleaningNotifier"),
	}
}

func (n *CleaningNotifier) Register(bus *events.EventBus) {
	bus.SubscribeOwn(events.ROOMS_CHANNEL, n.HandleEvent)
}

func (n *CleaningNotifier) HandleEvent(event events.Event) error {
	if event.Type != events.ROOM_CLEANED {
		return nil
	}

	log := n.log.Function("HandleEvent")

	payload, err := events.ParseRoomCleaned(event)
	if err != nil {
		return log.Err("failed to read room cleaned event", err, "eventID", event.ID)
	}

	cleanedBy := payload.HousekeeperName
	if cleanedBy == "" {
		cleanedBy = "unassigned"
	}
	message := fmt.Sprintf("Room %s cleaned by %s", payload.RoomNumber, cleanedBy)

	ctx := context.Background()
	for _, username := range n.admins.AdminUsernames(ctx) {
		if _, err := n.notifications.Enqueue(ctx, message, NotificationInfo, username); err != nil {
			log.Er("failed to notify admin", err, "username", username)
		}
	}

	return nil
}
