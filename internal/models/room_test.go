package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoomStatus_IsValid(t *testing.T) {
	for _, status := range RoomStatuses {
		assert.True(t, status.IsValid(), status)
	}

	assert.False(t, RoomStatus("").IsValid())
	assert.False(t, RoomStatus("occupied").IsValid())
	assert.False(t, RoomStatus("Clean").IsValid())
}

func TestTransitionAllowed_EveryPair(t *testing.T) {
	for _, from := range RoomStatuses {
		for _, to := range RoomStatuses {
			assert.True(t, TransitionAllowed(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, TransitionAllowed(RoomStatusClean, "occupied"))
	assert.False(t, TransitionAllowed("", RoomStatusDirty))
}

func TestPaymentStatus_CanBecome(t *testing.T) {
	tests := []struct {
		name     string
		from     PaymentStatus
		to       PaymentStatus
		expected bool
	}{
		{name: "unpaid to paid", from: PaymentStatusUnpaid, to: PaymentStatusPaid, expected: true},
		{name: "unpaid to unpaid", from: PaymentStatusUnpaid, to: PaymentStatusUnpaid, expected: true},
		{name: "paid to paid", from: PaymentStatusPaid, to: PaymentStatusPaid, expected: true},
		{name: "paid to unpaid", from: PaymentStatusPaid, to: PaymentStatusUnpaid, expected: false},
		{name: "unknown target", from: PaymentStatusUnpaid, to: "refunded", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanBecome(tt.to))
		})
	}
}

func TestCloneRooms_DoesNotAlias(t *testing.T) {
	rooms := []Room{
		{ID: "a", Number: "101", Status: RoomStatusDirty, Payment: decimal.NewFromInt(15)},
		{ID: "b", Number: "102", Status: RoomStatusClean, LastCleaned: time.Now()},
	}

	cloned := CloneRooms(rooms)
	assert.Equal(t, rooms, cloned)

	rooms[0].Status = RoomStatusClean
	rooms[1].Notes = "changed"

	assert.Equal(t, RoomStatusDirty, cloned[0].Status)
	assert.Equal(t, "", cloned[1].Notes)
}

func TestCloneRooms_NilBecomesEmpty(t *testing.T) {
	cloned := CloneRooms(nil)

	assert.NotNil(t, cloned)
	assert.Empty(t, cloned)
}

func TestHistoryEntry_Clone(t *testing.T) {
	entry := HistoryEntry{Date: "2026-10-15", Rooms: []Room{{ID: "a", Number: "701"}}}

	cloned := entry.Clone()
	entry.Rooms[0].Number = "702"

	assert.Equal(t, "701", cloned.Rooms[0].Number)
}
