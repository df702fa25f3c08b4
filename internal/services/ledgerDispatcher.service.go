package services

import (
	"context"
	"errors"
	"roomboard/internal/events"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"time"
)

type CleaningRecorder interface {
	RecordCleaning(ctx context.Context, record CleaningRecordRequest) (string, error)
}

// LedgerDispatcher forwards every cleaned room to the ledger. Delivery is
// fire-and-forget: failures are logged and never retried.
type LedgerDispatcher struct {
	ledger  CleaningRecorder
	timeout time.Duration
	log     logger.Logger
}

func NewLedgerDispatcher(ledger CleaningRecorder, timeout time.Duration) *LedgerDispatcher {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &LedgerDispatcher{
		ledger:  ledger,
		timeout: timeout,
		log:     logger.New("LedgerDispatcher"),
	}
}

func (d *LedgerDispatcher) Register(bus *events.EventBus) {
	bus.SubscribeOwn(events.ROOMS_CHANNEL, d.HandleEvent)
}

func (d *LedgerDispatcher) HandleEvent(event events.Event) error {
	if event.Type != events.ROOM_CLEANED {
		return nil
	}

	log := d.log.Function("HandleEvent")

	payload, err := events.ParseRoomCleaned(event)
	if err != nil {
		return log.Err("failed to read room cleaned event", err, "eventID", event.ID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_, err = d.ledger.RecordCleaning(ctx, CleaningRecordRequest{
		RoomNumber:      payload.RoomNumber,
		HousekeeperName: payload.HousekeeperName,
		Payment:         payload.Payment,
	})
	if errors.Is(err, ErrLedgerDisabled) {
		log.Debug("Ledger disabled, skipping cleaning record", "roomNumber", payload.RoomNumber)
		return nil
	}
	if err != nil {
		return log.Err("failed to record cleaning", err, "roomNumber", payload.RoomNumber)
	}

	return nil
}
