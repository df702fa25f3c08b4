package models

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationSuccess, NotificationInfo, NotificationWarning, NotificationError:
		return true
	}
	return false
}

type PersistentNotification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	UserID    string           `json:"userId"`
	Read      bool             `json:"read"`
}

// VisibleTo reports whether the notification belongs in userID's active queue at now.
func (n PersistentNotification) VisibleTo(userID string, now time.Time, ttl time.Duration) bool {
	return !n.Read && n.UserID == userID && !n.ExpiredAt(now, ttl)
}

func (n PersistentNotification) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(n.Timestamp) >= ttl
}
