package notificationsController

import (
	"context"
	"errors"
	"fmt"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrValidation = errors.New("validation error")
	ErrPersist    = errors.New("notification change not persisted")
)

type NotificationsControllerInterface interface {
	Enqueue(
		ctx context.Context,
		message string,
		notificationType NotificationType,
		userID string,
	) (PersistentNotification, error)
	Activate(ctx context.Context, userID string) []PersistentNotification
	Deactivate(ctx context.Context)
	Visible(ctx context.Context, userID string) []PersistentNotification
	MarkRead(ctx context.Context, userID, id string) error
	RenameRecipient(ctx context.Context, from, to string) (int, error)
	Compact(ctx context.Context) (int, error)
}

// NotificationsController keeps one shared log for every user in the store and
// the visible queue of the active user in memory.
type NotificationsController struct {
	repo repositories.NotificationRepository
	ttl  time.Duration
	now  func() time.Time
	log  logger.Logger

	mu         sync.Mutex
	activeUser string
	visible    []PersistentNotification
}

func New(repos repositories.Repository, ttl time.Duration, now func() time.Time) *NotificationsController {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}

	return &NotificationsController{
		repo:    repos.Notification,
		ttl:     ttl,
		now:     now,
		log:     logger.New("notificationsController"),
		visible: []PersistentNotification{},
	}
}

func (c *NotificationsController) Enqueue(
	ctx context.Context,
	message string,
	notificationType NotificationType,
	userID string,
) (PersistentNotification, error) {
	log := logger.NewWithContext(ctx, "notificationsController").Function("Enqueue")

	message = strings.TrimSpace(message)
	if message == "" {
		return PersistentNotification{}, log.ErrorWithType(ErrValidation, "message is required")
	}
	if !notificationType.IsValid() {
		return PersistentNotification{}, log.ErrorWithType(ErrValidation, "invalid notification type",
			"type", notificationType)
	}
	if strings.TrimSpace(userID) == "" {
		return PersistentNotification{}, log.ErrorWithType(ErrValidation, "recipient is required")
	}

	notification := PersistentNotification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notificationType,
		Timestamp: c.now(),
		UserID:    userID,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := append(c.repo.Load(ctx), notification)
	if userID == c.activeUser {
		c.visible = append(c.visible, notification)
	}

	log.Debug("Notification queued", "notificationID", notification.ID, "userID", userID)
	return notification, c.persist(ctx, entries)
}

// Activate makes userID the active recipient and loads their visible queue.
func (c *NotificationsController) Activate(ctx context.Context, userID string) []PersistentNotification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeUser = userID
	c.visible = c.filterVisible(c.repo.Load(ctx), userID)

	return append([]PersistentNotification{}, c.visible...)
}

func (c *NotificationsController) Deactivate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeUser = ""
	c.visible = []PersistentNotification{}
}

func (c *NotificationsController) Visible(ctx context.Context, userID string) []PersistentNotification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if userID != "" && userID == c.activeUser {
		return c.filterVisible(c.visible, userID)
	}
	return c.filterVisible(c.repo.Load(ctx), userID)
}

// MarkRead marks one of userID's notifications read. It is idempotent, and
// unknown ids or ids addressed to someone else are ignored.
func (c *NotificationsController) MarkRead(ctx context.Context, userID, id string) error {
	log := logger.NewWithContext(ctx, "notificationsController").Function("MarkRead")

	if userID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.repo.Load(ctx)
	changed := false
	for i := range entries {
		if entries[i].ID != id || entries[i].UserID != userID {
			continue
		}
		if !entries[i].Read {
			entries[i].Read = true
			changed = true
		}
	}

	if userID == c.activeUser {
		c.visible = removeByID(c.visible, id)
	}

	if !changed {
		return nil
	}

	log.Debug("Notification marked read", "notificationID", id, "userID", userID)
	return c.persist(ctx, entries)
}

// RenameRecipient readdresses every notification of from to to, including the
// visible queue when from is the active user.
func (c *NotificationsController) RenameRecipient(ctx context.Context, from, to string) (int, error) {
	log := logger.NewWithContext(ctx, "notificationsController").Function("RenameRecipient")

	if from == "" || to == "" || from == to {
		return 0, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeUser == from {
		c.activeUser = to
		for i := range c.visible {
			c.visible[i].UserID = to
		}
	}

	entries := c.repo.Load(ctx)
	renamed := 0
	for i := range entries {
		if entries[i].UserID == from {
			entries[i].UserID = to
			renamed++
		}
	}

	if renamed == 0 {
		return 0, nil
	}

	log.Info("Notifications readdressed", "from", from, "to", to, "count", renamed)
	return renamed, c.persist(ctx, entries)
}

// Compact drops read and expired entries from the shared log.
func (c *NotificationsController) Compact(ctx context.Context) (int, error) {
	log := logger.NewWithContext(ctx, "notificationsController").Function("Compact")

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entries := c.repo.Load(ctx)
	kept := make([]PersistentNotification, 0, len(entries))
	for _, entry := range entries {
		if !entry.Read && !entry.ExpiredAt(now, c.ttl) {
			kept = append(kept, entry)
		}
	}

	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	log.Info("Notification log compacted", "removed", removed, "kept", len(kept))
	return removed, c.persist(ctx, kept)
}

func (c *NotificationsController) filterVisible(
	entries []PersistentNotification,
	userID string,
) []PersistentNotification {
	now := c.now()
	visible := []PersistentNotification{}
	for _, entry := range entries {
		if entry.VisibleTo(userID, now, c.ttl) {
			visible = append(visible, entry)
		}
	}
	return visible
}

func (c *NotificationsController) persist(ctx context.Context, entries []PersistentNotification) error {
	if err := c.repo.Save(ctx, entries); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func removeByID(entries []PersistentNotification, id string) []PersistentNotification {
	kept := make([]PersistentNotification, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	return kept
}
