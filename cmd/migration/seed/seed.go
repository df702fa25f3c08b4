package seed

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type seedRoom struct {
	number   string
	floor    string
	status   RoomStatus
	assigned string
	priority Priority
	payment  int64
}

var seedRooms = []seedRoom{
	{number: "101", floor: "1", status: RoomStatusDirty, priority: PriorityHigh, payment: 500},
	{number: "102", floor: "1", status: RoomStatusInProgress, assigned: "Maria", priority: PriorityNormal, payment: 500},
	{number: "201", floor: "2", status: RoomStatusClean, assigned: "Maria", priority: PriorityNormal, payment: 700},
	{number: "202", floor: "2", status: RoomStatusInspection, priority: PriorityNormal, payment: 700},
}

// Seed replaces the board with a small development data set and resets the
// roster, session and notification log.
func Seed(ctx context.Context, repos repositories.Repository, now time.Time, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	rooms := make([]Room, 0, len(seedRooms))
	for _, seed := range seedRooms {
		room := Room{
			ID:            uuid.NewString(),
			Number:        seed.number,
			Floor:         seed.floor,
			Status:        seed.status,
			AssignedTo:    seed.assigned,
			Priority:      seed.priority,
			Payment:       decimal.NewFromInt(seed.payment),
			PaymentStatus: PaymentStatusUnpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if seed.status == RoomStatusClean {
			room.LastCleaned = now
		}
		rooms = append(rooms, room)
	}

	if err := repos.Room.Save(ctx, rooms); err != nil {
		return log.Err("failed to seed rooms", err)
	}

	if err := repos.History.Save(ctx, []HistoryEntry{}); err != nil {
		return log.Err("failed to reset history", err)
	}

	if err := repos.User.SaveRoster(ctx, repositories.DefaultRoster()); err != nil {
		return log.Err("failed to seed user roster", err)
	}

	if err := repos.User.ClearSession(ctx); err != nil {
		return log.Err("failed to clear session", err)
	}

	if err := repos.Notification.Save(ctx, []PersistentNotification{}); err != nil {
		return log.Err("failed to reset notifications", err)
	}

	log.Info("Seeded development data", "rooms", len(rooms))
	return nil
}
