package events

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoomCleaned is published after a room transitions into clean.
type RoomCleaned struct {
	RoomID          string
	RoomNumber      string
	HousekeeperName string
	Payment         decimal.Decimal
}

func NewRoomCleanedEvent(payload RoomCleaned) Event {
	return Event{
		Type:    ROOM_CLEANED,
		Channel: ROOMS_CHANNEL,
		Data: map[string]any{
			"roomId":          payload.RoomID,
			"roomNumber":      payload.RoomNumber,
			"housekeeperName": payload.HousekeeperName,
			"payment":         payload.Payment.String(),
		},
	}
}

// ParseRoomCleaned reads the payload back out of an event, including one that
// made a round trip through valkey.
func ParseRoomCleaned(event Event) (RoomCleaned, error) {
	if event.Type != ROOM_CLEANED {
		return RoomCleaned{}, fmt.Errorf("unexpected event type %q", event.Type)
	}

	payload := RoomCleaned{
		RoomID:          stringField(event.Data, "roomId"),
		RoomNumber:      stringField(event.Data, "roomNumber"),
		HousekeeperName: stringField(event.Data, "housekeeperName"),
		Payment:         decimal.Zero,
	}

	if raw := stringField(event.Data, "payment"); raw != "" {
		payment, err := decimal.NewFromString(raw)
		if err != nil {
			return RoomCleaned{}, fmt.Errorf("invalid payment %q: %w", raw, err)
		}
		payload.Payment = payment
	}

	return payload, nil
}

func stringField(data map[string]any, key string) string {
	value, _ := data[key].(string)
	return value
}
