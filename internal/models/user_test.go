package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoredUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     StoredUser
		expected string
	}{
		{
			name:     "Housekeeper alias wins",
			user:     StoredUser{Username: "maria", HousekeeperName: "Maria"},
			expected: "Maria",
		},
		{
			name:     "Falls back to username",
			user:     StoredUser{Username: "admin@mail.ru"},
			expected: "admin@mail.ru",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

func TestStoredUser_ToProfileOmitsPassword(t *testing.T) {
	user := StoredUser{Username: "maria", Password: "secret", Role: RoleHousekeeper, HousekeeperName: "Maria"}

	profile := user.ToProfile()

	assert.Equal(t, "maria", profile.Username)
	assert.Equal(t, "Maria", profile.DisplayName)
	assert.Equal(t, RoleHousekeeper, profile.Role)
}

func TestSession_IsAdmin(t *testing.T) {
	var nilSession *Session

	assert.False(t, nilSession.IsAdmin())
	assert.False(t, (&Session{Role: RoleHousekeeper}).IsAdmin())
	assert.True(t, (&Session{Role: RoleAdmin}).IsAdmin())
}

func TestNotification_VisibleTo(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	fresh := PersistentNotification{UserID: "maria", Timestamp: now.Add(-time.Hour)}
	expired := PersistentNotification{UserID: "maria", Timestamp: now.Add(-25 * time.Hour)}
	read := PersistentNotification{UserID: "maria", Timestamp: now, Read: true}

	assert.True(t, fresh.VisibleTo("maria", now, ttl))
	assert.False(t, fresh.VisibleTo("admin", now, ttl))
	assert.False(t, expired.VisibleTo("maria", now, ttl))
	assert.False(t, read.VisibleTo("maria", now, ttl))
}
