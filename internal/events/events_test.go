package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDelivery(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var mu sync.Mutex
	var received []Event

	for i := 0; i < 2; i++ {
		bus.Subscribe(ROOMS_CHANNEL, func(event Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, event)
			return nil
		})
	}

	require.NoError(t, bus.Publish(ROOMS_CHANNEL, Event{Type: ROOM_CLEANED}))
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.NotEmpty(t, received[0].ID)
	assert.Equal(t, ROOMS_CHANNEL, received[0].Channel)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var mu sync.Mutex
	calls := 0

	bus.Subscribe(ROOMS_CHANNEL, func(Event) error {
		return errors.New("ledger unreachable")
	})
	bus.Subscribe(ROOMS_CHANNEL, func(Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	require.NoError(t, bus.Publish(ROOMS_CHANNEL, Event{Type: ROOM_CLEANED}))
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestEventBus_OtherChannelsIgnored(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	called := false
	bus.Subscribe(Channel("other"), func(Event) error {
		called = true
		return nil
	})

	require.NoError(t, bus.Publish(ROOMS_CHANNEL, Event{Type: ROOM_CLEANED}))
	bus.Wait()

	assert.False(t, called)
}

func TestEventBus_SubscribeOwnSkipsOtherInstances(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var mu sync.Mutex
	var own, all []string

	bus.SubscribeOwn(ROOMS_CHANNEL, func(event Event) error {
		mu.Lock()
		defer mu.Unlock()
		own = append(own, event.ID)
		return nil
	})
	bus.Subscribe(ROOMS_CHANNEL, func(event Event) error {
		mu.Lock()
		defer mu.Unlock()
		all = append(all, event.ID)
		return nil
	})

	require.NoError(t, bus.Publish(ROOMS_CHANNEL, Event{ID: "local", Type: ROOM_CLEANED}))
	// Same path the valkey listener takes for a message from another instance.
	bus.notifyLocalHandlers(ROOMS_CHANNEL, Event{ID: "remote", Type: ROOM_CLEANED, Origin: "other-instance"})
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"local"}, own)
	assert.ElementsMatch(t, []string{"local", "remote"}, all)
}

func TestEventBus_PublishStampsOrigin(t *testing.T) {
	first, second := New(nil), New(nil)
	defer first.Close()
	defer second.Close()

	received := make(chan Event, 1)
	first.Subscribe(ROOMS_CHANNEL, func(event Event) error {
		received <- event
		return nil
	})

	require.NoError(t, first.Publish(ROOMS_CHANNEL, Event{Type: ROOM_CLEANED}))
	first.Wait()

	event := <-received
	assert.Equal(t, first.origin, event.Origin)
	assert.NotEqual(t, first.origin, second.origin)
}

func TestRoomCleaned_RoundTrip(t *testing.T) {
	event := NewRoomCleanedEvent(RoomCleaned{
		RoomID:          "id-701",
		RoomNumber:      "701",
		HousekeeperName: "Maria",
		Payment:         decimal.RequireFromString("15.75"),
	})

	payload, err := ParseRoomCleaned(event)
	require.NoError(t, err)
	assert.Equal(t, "701", payload.RoomNumber)
	assert.Equal(t, "Maria", payload.HousekeeperName)
	assert.True(t, decimal.RequireFromString("15.75").Equal(payload.Payment))
}

func TestParseRoomCleaned_Errors(t *testing.T) {
	_, err := ParseRoomCleaned(Event{Type: "other"})
	assert.Error(t, err)

	_, err = ParseRoomCleaned(Event{Type: ROOM_CLEANED, Data: map[string]any{"payment": "abc"}})
	assert.Error(t, err)

	payload, err := ParseRoomCleaned(Event{Type: ROOM_CLEANED, Data: map[string]any{"roomNumber": "12"}})
	require.NoError(t, err)
	assert.True(t, payload.Payment.IsZero())
}
