package historyController

import (
	"context"
	"errors"
	"fmt"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"sort"
	"sync"
	"time"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("snapshot not found")
	ErrPersist    = errors.New("history change not persisted")
)

// RoomBoard is the live room list snapshots are taken from and restored into.
type RoomBoard interface {
	List(ctx context.Context) []Room
	Replace(ctx context.Context, rooms []Room) error
}

type HistoryControllerInterface interface {
	SaveSnapshot(ctx context.Context) (HistoryEntry, error)
	List(ctx context.Context) []HistoryEntry
	Get(ctx context.Context, date string) (HistoryEntry, error)
	LoadSnapshot(ctx context.Context, entry HistoryEntry, confirmed bool) (bool, error)
	Restore(ctx context.Context, date string, confirmed bool) (bool, error)
	DeleteSnapshot(ctx context.Context, date string) error
}

type HistoryController struct {
	repo  repositories.HistoryRepository
	board RoomBoard
	now   func() time.Time
	log   logger.Logger

	mu      sync.Mutex
	entries []HistoryEntry
}

func New(
	ctx context.Context,
	repos repositories.Repository,
	board RoomBoard,
	now func() time.Time,
) *HistoryController {
	if now == nil {
		now = time.Now
	}

	entries := repos.History.Load(ctx)
	sortNewestFirst(entries)

	return &HistoryController{
		repo:    repos.History,
		board:   board,
		now:     now,
		log:     logger.New("historyController"),
		entries: entries,
	}
}

// SaveSnapshot stores a copy of the live board under today's date, replacing
// any snapshot already taken today.
func (c *HistoryController) SaveSnapshot(ctx context.Context) (HistoryEntry, error) {
	log := logger.NewWithContext(ctx, "historyController").Function("SaveSnapshot")

	now := c.now()
	entry := HistoryEntry{
		Date:    now.Format(HistoryDateLayout),
		Rooms:   CloneRooms(c.board.List(ctx)),
		SavedAt: now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := false
	for i := range c.entries {
		if c.entries[i].Date == entry.Date {
			c.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		c.entries = append(c.entries, entry)
	}
	sortNewestFirst(c.entries)

	log.Info("Snapshot saved", "date", entry.Date, "rooms", len(entry.Rooms), "replaced", replaced)

	return entry.Clone(), c.persist(ctx)
}

func (c *HistoryController) List(ctx context.Context) []HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]HistoryEntry, len(c.entries))
	for i, entry := range c.entries {
		entries[i] = entry.Clone()
	}
	return entries
}

func (c *HistoryController) Get(ctx context.Context, date string) (HistoryEntry, error) {
	log := logger.NewWithContext(ctx, "historyController").Function("Get")

	if _, err := time.Parse(HistoryDateLayout, date); err != nil {
		return HistoryEntry{}, log.ErrorWithType(ErrValidation, "date must be YYYY-MM-DD", "date", date)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.entries {
		if entry.Date == date {
			return entry.Clone(), nil
		}
	}

	return HistoryEntry{}, log.ErrorWithType(ErrNotFound, "snapshot not found", "date", date)
}

// LoadSnapshot overwrites the live board with entry's rooms. Without
// confirmation it does nothing.
func (c *HistoryController) LoadSnapshot(ctx context.Context, entry HistoryEntry, confirmed bool) (bool, error) {
	log := logger.NewWithContext(ctx, "historyController").Function("LoadSnapshot")

	if !confirmed {
		log.Debug("Snapshot restore not confirmed", "date", entry.Date)
		return false, nil
	}

	if err := c.board.Replace(ctx, CloneRooms(entry.Rooms)); err != nil {
		return true, log.Err("room board restored but not persisted", err, "date", entry.Date)
	}

	log.Info("Snapshot restored", "date", entry.Date, "rooms", len(entry.Rooms))
	return true, nil
}

func (c *HistoryController) Restore(ctx context.Context, date string, confirmed bool) (bool, error) {
	entry, err := c.Get(ctx, date)
	if err != nil {
		return false, err
	}

	return c.LoadSnapshot(ctx, entry, confirmed)
}

// DeleteSnapshot removes the snapshot for date. Unknown dates are ignored.
func (c *HistoryController) DeleteSnapshot(ctx context.Context, date string) error {
	log := logger.NewWithContext(ctx, "historyController").Function("DeleteSnapshot")

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]HistoryEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Date != date {
			kept = append(kept, entry)
		}
	}

	if len(kept) == len(c.entries) {
		log.Debug("No snapshot for date", "date", date)
		return nil
	}

	c.entries = kept
	log.Info("Snapshot deleted", "date", date)

	return c.persist(ctx)
}

// persist must be called with mu held.
func (c *HistoryController) persist(ctx context.Context) error {
	if err := c.repo.Save(ctx, c.entries); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// sortNewestFirst relies on YYYY-MM-DD keys sorting lexically in date order.
func sortNewestFirst(entries []HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
