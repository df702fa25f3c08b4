package notificationsController

import (
	"context"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"roomboard/internal/store"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	current time.Time
}

func (c *clock) now() time.Time { return c.current }

func setup(t *testing.T) (*NotificationsController, *clock, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	clk := &clock{current: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	return New(repositories.New(s), DefaultTTL, clk.now), clk, s
}

func TestEnqueue_ActiveUserSeesItImmediately(t *testing.T) {
	ctrl, _, _ := setup(t)
	ctx := context.Background()

	ctrl.Activate(ctx, "maria")

	n, err := ctrl.Enqueue(ctx, "Room 701 needs towels", NotificationWarning, "maria")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)

	_, err = ctrl.Enqueue(ctx, "For someone else", NotificationInfo, "admin@mail.ru")
	require.NoError(t, err)

	visible := ctrl.Visible(ctx, "maria")
	require.Len(t, visible, 1)
	assert.Equal(t, n.ID, visible[0].ID)

	others := ctrl.Visible(ctx, "admin@mail.ru")
	require.Len(t, others, 1)
	assert.Equal(t, "For someone else", others[0].Message)
}

func TestEnqueue_Validation(t *testing.T) {
	ctrl, _, _ := setup(t)
	ctx := context.Background()

	_, err := ctrl.Enqueue(ctx, "", NotificationInfo, "maria")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ctrl.Enqueue(ctx, "hello", "loud", "maria")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ctrl.Enqueue(ctx, "hello", NotificationInfo, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestActivate_FiltersExpiredAndRead(t *testing.T) {
	ctrl, clk, _ := setup(t)
	ctx := context.Background()

	old, err := ctrl.Enqueue(ctx, "old", NotificationInfo, "maria")
	require.NoError(t, err)

	clk.current = clk.current.Add(20 * time.Hour)
	read, err := ctrl.Enqueue(ctx, "read", NotificationInfo, "maria")
	require.NoError(t, err)
	require.NoError(t, ctrl.MarkRead(ctx, "maria", read.ID))
	fresh, err := ctrl.Enqueue(ctx, "fresh", NotificationInfo, "maria")
	require.NoError(t, err)

	clk.current = clk.current.Add(5 * time.Hour)
	visible := ctrl.Activate(ctx, "maria")

	require.Len(t, visible, 1)
	assert.Equal(t, fresh.ID, visible[0].ID)
	assert.NotEqual(t, old.ID, visible[0].ID)
}

func TestExpiredEntriesStayInLogUntilCompacted(t *testing.T) {
	ctrl, clk, s := setup(t)
	ctx := context.Background()
	repo := repositories.NewNotificationRepository(s)

	_, err := ctrl.Enqueue(ctx, "old", NotificationInfo, "maria")
	require.NoError(t, err)
	read, err := ctrl.Enqueue(ctx, "read", NotificationInfo, "maria")
	require.NoError(t, err)
	require.NoError(t, ctrl.MarkRead(ctx, "maria", read.ID))

	clk.current = clk.current.Add(DefaultTTL)
	_, err = ctrl.Enqueue(ctx, "new", NotificationInfo, "maria")
	require.NoError(t, err)

	assert.Len(t, ctrl.Visible(ctx, "maria"), 1)
	assert.Len(t, repo.Load(ctx), 3)

	removed, err := ctrl.Compact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Len(t, repo.Load(ctx), 1)

	removed, err = ctrl.Compact(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMarkRead_Idempotent(t *testing.T) {
	ctrl, _, s := setup(t)
	ctx := context.Background()

	ctrl.Activate(ctx, "maria")
	n, err := ctrl.Enqueue(ctx, "Room 701 cleaned", NotificationSuccess, "maria")
	require.NoError(t, err)

	require.NoError(t, ctrl.MarkRead(ctx, "maria", n.ID))
	require.NoError(t, ctrl.MarkRead(ctx, "maria", n.ID))
	require.NoError(t, ctrl.MarkRead(ctx, "maria", "unknown"))

	assert.Empty(t, ctrl.Visible(ctx, "maria"))
	assert.Empty(t, ctrl.Activate(ctx, "maria"))

	entries := repositories.NewNotificationRepository(s).Load(ctx)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Read)
}

func TestMarkRead_OnlyRecipientCanRead(t *testing.T) {
	ctrl, _, s := setup(t)
	ctx := context.Background()

	ctrl.Activate(ctx, "admin@mail.ru")
	n, err := ctrl.Enqueue(ctx, "Room 101 cleaned by Maria", NotificationInfo, "admin@mail.ru")
	require.NoError(t, err)

	require.NoError(t, ctrl.MarkRead(ctx, "maria", n.ID))
	require.NoError(t, ctrl.MarkRead(ctx, "", n.ID))

	visible := ctrl.Visible(ctx, "admin@mail.ru")
	require.Len(t, visible, 1)
	assert.Equal(t, n.ID, visible[0].ID)

	entries := repositories.NewNotificationRepository(s).Load(ctx)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Read)

	require.NoError(t, ctrl.MarkRead(ctx, "admin@mail.ru", n.ID))
	assert.Empty(t, ctrl.Visible(ctx, "admin@mail.ru"))
}

func TestRenameRecipient(t *testing.T) {
	ctrl, _, s := setup(t)
	ctx := context.Background()

	ctrl.Activate(ctx, "maria")
	mine, err := ctrl.Enqueue(ctx, "Room 701 needs towels", NotificationWarning, "maria")
	require.NoError(t, err)
	_, err = ctrl.Enqueue(ctx, "For someone else", NotificationInfo, "admin@mail.ru")
	require.NoError(t, err)

	renamed, err := ctrl.RenameRecipient(ctx, "maria", "maria.k")
	require.NoError(t, err)
	assert.Equal(t, 1, renamed)

	visible := ctrl.Visible(ctx, "maria.k")
	require.Len(t, visible, 1)
	assert.Equal(t, mine.ID, visible[0].ID)
	assert.Empty(t, ctrl.Visible(ctx, "maria"))

	_, err = ctrl.Enqueue(ctx, "After rename", NotificationInfo, "maria.k")
	require.NoError(t, err)
	assert.Len(t, ctrl.Visible(ctx, "maria.k"), 2)

	entries := repositories.NewNotificationRepository(s).Load(ctx)
	require.Len(t, entries, 3)
	assert.Equal(t, "maria.k", entries[0].UserID)
	assert.Equal(t, "admin@mail.ru", entries[1].UserID)

	renamed, err = ctrl.RenameRecipient(ctx, "ghost", "someone")
	require.NoError(t, err)
	assert.Zero(t, renamed)
}

func TestDeactivate(t *testing.T) {
	ctrl, _, _ := setup(t)
	ctx := context.Background()

	ctrl.Activate(ctx, "maria")
	ctrl.Deactivate(ctx)

	_, err := ctrl.Enqueue(ctx, "queued while away", NotificationInfo, "maria")
	require.NoError(t, err)

	assert.Len(t, ctrl.Visible(ctx, "maria"), 1)
}

func TestCorruptLogFailsOpen(t *testing.T) {
	ctrl, _, s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.KeyNotifications, []byte("{{{")))

	assert.Empty(t, ctrl.Activate(ctx, "maria"))

	_, err := ctrl.Enqueue(ctx, "recovered", NotificationInfo, "maria")
	require.NoError(t, err)
	assert.Len(t, ctrl.Visible(ctx, "maria"), 1)
}
