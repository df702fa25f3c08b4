package controllers

import (
	"context"
	"roomboard/config"
	"roomboard/internal/events"
	"roomboard/internal/repositories"
	"roomboard/internal/services"

	authController "roomboard/internal/controllers/auth"
	historyController "roomboard/internal/controllers/history"
	housekeepersController "roomboard/internal/controllers/housekeepers"
	ledgerController "roomboard/internal/controllers/ledger"
	notificationsController "roomboard/internal/controllers/notifications"
	roomsController "roomboard/internal/controllers/rooms"
)

type Controllers struct {
	Auth          authController.AuthControllerInterface
	Rooms         roomsController.RoomsControllerInterface
	History       historyController.HistoryControllerInterface
	Housekeepers  housekeepersController.HousekeepersControllerInterface
	Notifications notificationsController.NotificationsControllerInterface
	Ledger        ledgerController.LedgerControllerInterface
}

func New(
	ctx context.Context,
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
) Controllers {
	rooms := roomsController.New(ctx, repos, eventBus, nil)

	return Controllers{
		Auth:          authController.New(ctx, repos, config.SessionSecret, nil),
		Rooms:         rooms,
		History:       historyController.New(ctx, repos, rooms, nil),
		Housekeepers:  housekeepersController.New(services.Roster, rooms, config.RemoteTimeout()),
		Notifications: notificationsController.New(repos, config.NotificationTTL(), nil),
		Ledger:        ledgerController.New(services.Ledger, nil),
	}
}
