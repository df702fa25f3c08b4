package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomStatusDirty      RoomStatus = "dirty"
	RoomStatusInProgress RoomStatus = "in-progress"
	RoomStatusClean      RoomStatus = "clean"
	RoomStatusInspection RoomStatus = "inspection"
)

var RoomStatuses = []RoomStatus{
	RoomStatusDirty,
	RoomStatusInProgress,
	RoomStatusClean,
	RoomStatusInspection,
}

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusDirty, RoomStatusInProgress, RoomStatusClean, RoomStatusInspection:
		return true
	}
	return false
}

// TransitionAllowed reports whether a room may move from one status to another.
// The board is operator driven: every valid status may follow every other.
func TransitionAllowed(from, to RoomStatus) bool {
	return from.IsValid() && to.IsValid()
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityHigh
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentStatusUnpaid || p == PaymentStatusPaid
}

// CanBecome reports whether the payment status may change to next.
// Settled payments are never reopened.
func (p PaymentStatus) CanBecome(next PaymentStatus) bool {
	if !next.IsValid() {
		return false
	}
	return !(p == PaymentStatusPaid && next == PaymentStatusUnpaid)
}

type Room struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Floor         string          `json:"floor"`
	Status        RoomStatus      `json:"status"`
	AssignedTo    string          `json:"assignedTo"`
	LastCleaned   time.Time       `json:"lastCleaned"`
	CheckOut      string          `json:"checkOut"`
	CheckIn       string          `json:"checkIn"`
	Priority      Priority        `json:"priority"`
	Notes         string          `json:"notes"`
	Payment       decimal.Decimal `json:"payment"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Clone returns a value copy. Room holds only values and immutable decimals,
// so a struct copy never aliases the original.
func (r Room) Clone() Room {
	return r
}

func CloneRooms(rooms []Room) []Room {
	if rooms == nil {
		return []Room{}
	}
	cloned := make([]Room, len(rooms))
	for i, room := range rooms {
		cloned[i] = room.Clone()
	}
	return cloned
}

// RoomField names the fields that can be patched one at a time.
type RoomField string

const (
	RoomFieldNumber        RoomField = "number"
	RoomFieldFloor         RoomField = "floor"
	RoomFieldCheckOut      RoomField = "checkOut"
	RoomFieldCheckIn       RoomField = "checkIn"
	RoomFieldPriority      RoomField = "priority"
	RoomFieldNotes         RoomField = "notes"
	RoomFieldPayment       RoomField = "payment"
	RoomFieldPaymentStatus RoomField = "paymentStatus"
	RoomFieldAssignedTo    RoomField = "assignedTo"
)

type CreateRoomRequest struct {
	Number     string           `json:"number"`
	Floor      string           `json:"floor,omitempty"`
	AssignedTo string           `json:"assignedTo,omitempty"`
	CheckOut   string           `json:"checkOut,omitempty"`
	CheckIn    string           `json:"checkIn,omitempty"`
	Priority   Priority         `json:"priority,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Payment    *decimal.Decimal `json:"payment,omitempty"`
}
