package roomsController

import (
	"fmt"
	. "roomboard/internal/models"
	"roomboard/internal/utils"
	"strings"

	"github.com/shopspring/decimal"
)

// fieldSetter parses value for field and returns the patch to apply. Parse
// errors surface before the room is looked up; the returned patch may still
// refuse a change that depends on the room's current state.
func fieldSetter(field RoomField, value string) (func(room *Room) error, error) {
	switch field {
	case RoomFieldNumber:
		number := utils.CleanText(value)
		if number == "" {
			return nil, fmt.Errorf("room number is required")
		}
		return func(room *Room) error { room.Number = number; return nil }, nil
	case RoomFieldFloor:
		floor := utils.CleanText(value)
		return func(room *Room) error { room.Floor = floor; return nil }, nil
	case RoomFieldCheckOut:
		checkOut := utils.CleanText(value)
		return func(room *Room) error { room.CheckOut = checkOut; return nil }, nil
	case RoomFieldCheckIn:
		checkIn := utils.CleanText(value)
		return func(room *Room) error { room.CheckIn = checkIn; return nil }, nil
	case RoomFieldNotes:
		notes := utils.CleanText(value)
		return func(room *Room) error { room.Notes = notes; return nil }, nil
	case RoomFieldAssignedTo:
		name := utils.CleanText(value)
		return func(room *Room) error { room.AssignedTo = name; return nil }, nil
	case RoomFieldPriority:
		priority := Priority(value)
		if !priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q", value)
		}
		return func(room *Room) error { room.Priority = priority; return nil }, nil
	case RoomFieldPayment:
		payment, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid payment %q", value)
		}
		if payment.IsNegative() {
			return nil, fmt.Errorf("payment cannot be negative")
		}
		return func(room *Room) error { room.Payment = payment; return nil }, nil
	case RoomFieldPaymentStatus:
		status := PaymentStatus(value)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid payment status %q", value)
		}
		return func(room *Room) error {
			if !room.PaymentStatus.CanBecome(status) {
				return ErrPaymentRegression
			}
			room.PaymentStatus = status
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("field %q cannot be updated", field)
	}
}
