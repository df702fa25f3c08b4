package services

import (
	"context"
	"errors"
	"roomboard/internal/events"
	. "roomboard/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

type adminsStub []string

func (a adminsStub) AdminUsernames(context.Context) []string {
	return a
}

type senderStub struct {
	sent []PersistentNotification
	err  error
}

func (s *senderStub) Enqueue(
	_ context.Context,
	message string,
	notificationType NotificationType,
	userID string,
) (PersistentNotification, error) {
	n := PersistentNotification{Message: message, Type: notificationType, UserID: userID}
	s.sent = append(s.sent, n)
	return n, s.err
}

func TestCleaningNotifier_NotifiesEveryAdmin(t *testing.T) {
	sender := &senderStub{}
	notifier := NewCleaningNotifier(adminsStub{"admin@mail.ru", "boss"}, sender)

	err := notifier.HandleEvent(events.NewRoomCleanedEvent(events.RoomCleaned{
		RoomNumber:      "701",
		HousekeeperName: "Maria",
	}))

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, "Room 701 cleaned by Maria", sender.sent[0].Message)
	assert.Equal(t, NotificationInfo, sender.sent[0].Type)
	assert.Equal(t, "boss", sender.sent[1].UserID)
}

func TestCleaningNotifier_Unassigned(t *testing.T) {
	sender := &senderStub{err: errors.New("store down")}
	notifier := NewCleaningNotifier(adminsStub{"admin@mail.ru"}, sender)

	err := notifier.HandleEvent(events.NewRoomCleanedEvent(events.RoomCleaned{RoomNumber: "12"}))

	assert.NoError(t, err)
	assert.Equal(t, "Room 12 cleaned by unassigned", sender.sent[0].Message)
}

func TestCleaningNotifier_IgnoresOtherEvents(t *testing.T) {
	sender := &senderStub{}
	err := NewCleaningNotifier(adminsStub{"admin@mail.ru"}, sender).HandleEvent(events.Event{Type: "other"})

	assert.NoError(t, err)
	assert.Empty(t, sender.sent)
}
