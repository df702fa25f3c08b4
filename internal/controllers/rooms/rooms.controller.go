package roomsController

import (
	"context"
	"errors"
	"fmt"
	"roomboard/internal/events"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"roomboard/internal/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultFloor = "1"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("room not found")
	ErrPaymentRegression = errors.New("payment cannot return to unpaid")
	// ErrPersist is returned alongside a committed change that could not be written to the store.
	ErrPersist = errors.New("room change not persisted")
)

type EventPublisher interface {
	Publish(channel events.Channel, event events.Event) error
}

type RoomsControllerInterface interface {
	List(ctx context.Context) []Room
	Get(ctx context.Context, id string) (Room, error)
	Create(ctx context.Context, request CreateRoomRequest) (Room, error)
	UpdateStatus(ctx context.Context, id string, status RoomStatus) (Room, error)
	Assign(ctx context.Context, id string, housekeeperName string) (Room, error)
	UpdateField(ctx context.Context, id string, field RoomField, value string) (Room, error)
	MarkPaid(ctx context.Context, id string) (Room, error)
	Delete(ctx context.Context, id string, confirmed bool) (bool, error)
	UnassignHousekeeper(ctx context.Context, housekeeperName string) (int, error)
	Replace(ctx context.Context, rooms []Room) error
	TransitionAllowed(from, to RoomStatus) bool
}

// RoomsController owns the live room board. Every mutation holds mu for the
// in-memory change and the write-through that follows it.
type RoomsController struct {
	repo      repositories.RoomRepository
	publisher EventPublisher
	now       func() time.Time
	log       logger.Logger

	mu    sync.Mutex
	rooms []Room
}

func New(
	ctx context.Context,
	repos repositories.Repository,
	publisher EventPublisher,
	now func() time.Time,
) *RoomsController {
	if now == nil {
		now = time.Now
	}

	return &RoomsController{
		repo:      repos.Room,
		publisher: publisher,
		now:       now,
		log:       logger.New("roomsController"),
		rooms:     repos.Room.Load(ctx),
	}
}

func (c *RoomsController) TransitionAllowed(from, to RoomStatus) bool {
	return TransitionAllowed(from, to)
}

func (c *RoomsController) List(ctx context.Context) []Room {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CloneRooms(c.rooms)
}

func (c *RoomsController) Get(ctx context.Context, id string) (Room, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("Get")

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexOf(id)
	if index < 0 {
		return Room{}, log.ErrorWithType(ErrNotFound, "room not found", "roomID", id)
	}

	return c.rooms[index].Clone(), nil
}

func (c *RoomsController) Create(ctx context.Context, request CreateRoomRequest) (Room, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("Create")

	number := utils.CleanText(request.Number)
	if number == "" {
		return Room{}, log.ErrorWithType(ErrValidation, "room number is required")
	}

	priority := request.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return Room{}, log.ErrorWithType(ErrValidation, "invalid priority", "priority", priority)
	}

	floor := utils.CleanText(request.Floor)
	if floor == "" {
		floor = DefaultFloor
	}

	payment := decimal.Zero
	if request.Payment != nil {
		if request.Payment.IsNegative() {
			return Room{}, log.ErrorWithType(ErrValidation, "payment cannot be negative")
		}
		payment = *request.Payment
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Room{}, log.Err("failed to generate room id", err)
	}

	now := c.now()
	room := Room{
		ID:            id.String(),
		Number:        number,
		Floor:         floor,
		Status:        RoomStatusDirty,
		AssignedTo:    utils.CleanText(request.AssignedTo),
		LastCleaned:   now,
		CheckOut:      utils.CleanText(request.CheckOut),
		CheckIn:       utils.CleanText(request.CheckIn),
		Priority:      priority,
		Notes:         utils.CleanText(request.Notes),
		Payment:       payment,
		PaymentStatus: PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms = append(c.rooms, room)
	log.Info("Room created", "roomID", room.ID, "number", room.Number)

	return room.Clone(), c.persist(ctx)
}

func (c *RoomsController) UpdateStatus(ctx context.Context, id string, status RoomStatus) (Room, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("UpdateStatus")

	if !status.IsValid() {
		return Room{}, log.ErrorWithType(ErrValidation, "invalid room status", "status", status)
	}

	room, err := c.mutate(ctx, id, func(room *Room, now time.Time) error {
		if room.Status.IsValid() && !c.TransitionAllowed(room.Status, status) {
			return log.ErrorWithType(ErrValidation, "status transition not allowed",
				"from", room.Status, "to", status)
		}
		room.Status = status
		if status == RoomStatusClean {
			room.LastCleaned = now
		}
		return nil
	})
	if room.ID == "" {
		return room, err
	}

	if status == RoomStatusClean {
		c.publishCleaned(ctx, room)
	}

	return room, err
}

func (c *RoomsController) Assign(ctx context.Context, id string, housekeeperName string) (Room, error) {
	return c.mutate(ctx, id, func(room *Room, _ time.Time) error {
		room.AssignedTo = utils.CleanText(housekeeperName)
		return nil
	})
}

func (c *RoomsController) UpdateField(
	ctx context.Context,
	id string,
	field RoomField,
	value string,
) (Room, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("UpdateField")

	apply, err := fieldSetter(field, value)
	if err != nil {
		return Room{}, log.ErrorWithType(ErrValidation, err.Error(), "field", field)
	}

	return c.mutate(ctx, id, func(room *Room, _ time.Time) error {
		if err := apply(room); err != nil {
			return log.Err("rejected field update", err, "roomID", id, "field", field)
		}
		return nil
	})
}

func (c *RoomsController) MarkPaid(ctx context.Context, id string) (Room, error) {
	return c.mutate(ctx, id, func(room *Room, _ time.Time) error {
		room.PaymentStatus = PaymentStatusPaid
		return nil
	})
}

func (c *RoomsController) Delete(ctx context.Context, id string, confirmed bool) (bool, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("Delete")

	if !confirmed {
		log.Debug("Room deletion not confirmed", "roomID", id)
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexOf(id)
	if index < 0 {
		return false, log.ErrorWithType(ErrNotFound, "room not found", "roomID", id)
	}

	c.rooms = append(c.rooms[:index:index], c.rooms[index+1:]...)
	log.Info("Room deleted", "roomID", id)

	return true, c.persist(ctx)
}

// UnassignHousekeeper clears every assignment to housekeeperName and reports how many rooms changed.
func (c *RoomsController) UnassignHousekeeper(ctx context.Context, housekeeperName string) (int, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("UnassignHousekeeper")

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	count := 0
	for i := range c.rooms {
		if c.rooms[i].AssignedTo == housekeeperName {
			c.rooms[i].AssignedTo = ""
			c.rooms[i].UpdatedAt = now
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}

	log.Info("Housekeeper unassigned from rooms", "housekeeper", housekeeperName, "count", count)
	return count, c.persist(ctx)
}

func (c *RoomsController) Replace(ctx context.Context, rooms []Room) error {
	log := logger.NewWithContext(ctx, "roomsController").Function("Replace")

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms = CloneRooms(rooms)
	log.Info("Room board replaced", "count", len(c.rooms))

	return c.persist(ctx)
}

// mutate applies fn to a copy of the room and commits it only when fn succeeds.
// The returned room is empty when nothing was committed.
func (c *RoomsController) mutate(
	ctx context.Context,
	id string,
	fn func(room *Room, now time.Time) error,
) (Room, error) {
	log := logger.NewWithContext(ctx, "roomsController").Function("mutate")

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexOf(id)
	if index < 0 {
		return Room{}, log.ErrorWithType(ErrNotFound, "room not found", "roomID", id)
	}

	now := c.now()
	updated := c.rooms[index].Clone()
	if err := fn(&updated, now); err != nil {
		return Room{}, err
	}
	updated.UpdatedAt = now
	c.rooms[index] = updated

	return updated.Clone(), c.persist(ctx)
}

// persist must be called with mu held.
func (c *RoomsController) persist(ctx context.Context) error {
	if err := c.repo.Save(ctx, c.rooms); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (c *RoomsController) indexOf(id string) int {
	for i := range c.rooms {
		if c.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *RoomsController) publishCleaned(ctx context.Context, room Room) {
	if c.publisher == nil {
		return
	}

	log := logger.NewWithContext(ctx, "roomsController").Function("publishCleaned")

	event := events.NewRoomCleanedEvent(events.RoomCleaned{
		RoomID:          room.ID,
		RoomNumber:      room.Number,
		HousekeeperName: room.AssignedTo,
		Payment:         room.Payment,
	})
	if err := c.publisher.Publish(events.ROOMS_CHANNEL, event); err != nil {
		log.Er("failed to publish room cleaned event", err, "roomID", room.ID)
	}
}
