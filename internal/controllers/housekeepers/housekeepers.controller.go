package housekeepersController

import (
	"context"
	"errors"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"strings"
	"sync"
	"time"
)

var (
	ErrValidation = errors.New("validation error")
	ErrRemote     = errors.New("roster service unavailable")
)

type RosterClient interface {
	List(ctx context.Context) ([]Housekeeper, error)
	Add(ctx context.Context, name, email string) error
	Delete(ctx context.Context, name string) error
}

// RoomUnassigner clears room assignments for a housekeeper that left the roster.
type RoomUnassigner interface {
	UnassignHousekeeper(ctx context.Context, housekeeperName string) (int, error)
}

type RosterState struct {
	Loading      bool          `json:"loading"`
	Housekeepers []Housekeeper `json:"housekeepers"`
	Error        string        `json:"error,omitempty"`
}

type HousekeepersControllerInterface interface {
	Load(ctx context.Context) (RosterState, error)
	State() RosterState
	Add(ctx context.Context, name, email string) (RosterState, error)
	Delete(ctx context.Context, name string, confirmed bool) (bool, error)
}

type HousekeepersController struct {
	roster  RosterClient
	rooms   RoomUnassigner
	timeout time.Duration
	log     logger.Logger

	mu       sync.Mutex
	state    RosterState
	inFlight int
}

func New(roster RosterClient, rooms RoomUnassigner, timeout time.Duration) *HousekeepersController {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HousekeepersController{
		roster:  roster,
		rooms:   rooms,
		timeout: timeout,
		log:     logger.New("housekeepersController"),
		state:   RosterState{Housekeepers: []Housekeeper{}},
	}
}

// Load refreshes the roster from the remote service. Any failure, including
// the client timeout, leaves an empty roster. Loading stays set while any
// overlapping Load is still waiting on the service.
func (c *HousekeepersController) Load(ctx context.Context) (RosterState, error) {
	log := logger.NewWithContext(ctx, "housekeepersController").Function("Load")

	c.mu.Lock()
	c.inFlight++
	c.state.Loading = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	housekeepers, err := c.roster.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	c.state.Loading = c.inFlight > 0
	if err != nil {
		c.state.Housekeepers = []Housekeeper{}
		c.state.Error = err.Error()
		return c.snapshot(), log.Err("failed to load housekeeper roster", errors.Join(ErrRemote, err))
	}

	if housekeepers == nil {
		housekeepers = []Housekeeper{}
	}
	c.state.Housekeepers = housekeepers
	c.state.Error = ""
	log.Debug("Housekeeper roster loaded", "count", len(housekeepers))

	return c.snapshot(), nil
}

func (c *HousekeepersController) State() RosterState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

func (c *HousekeepersController) Add(ctx context.Context, name, email string) (RosterState, error) {
	log := logger.NewWithContext(ctx, "housekeepersController").Function("Add")

	name = strings.TrimSpace(name)
	if name == "" {
		return c.State(), log.ErrorWithType(ErrValidation, "housekeeper name is required")
	}

	addCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.roster.Add(addCtx, name, strings.TrimSpace(email)); err != nil {
		return c.State(), log.Err("failed to add housekeeper", errors.Join(ErrRemote, err), "name", name)
	}

	log.Info("Housekeeper added", "name", name)
	return c.Load(ctx)
}

// Delete removes a housekeeper from the remote roster and, only once that
// succeeded, unassigns them from every room.
func (c *HousekeepersController) Delete(ctx context.Context, name string, confirmed bool) (bool, error) {
	log := logger.NewWithContext(ctx, "housekeepersController").Function("Delete")

	name = strings.TrimSpace(name)
	if name == "" {
		return false, log.ErrorWithType(ErrValidation, "housekeeper name is required")
	}

	if !confirmed {
		log.Debug("Housekeeper deletion not confirmed", "name", name)
		return false, nil
	}

	deleteCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.roster.Delete(deleteCtx, name); err != nil {
		return false, log.Err("failed to delete housekeeper", errors.Join(ErrRemote, err), "name", name)
	}

	c.mu.Lock()
	kept := make([]Housekeeper, 0, len(c.state.Housekeepers))
	for _, housekeeper := range c.state.Housekeepers {
		if housekeeper.Name != name {
			kept = append(kept, housekeeper)
		}
	}
	c.state.Housekeepers = kept
	c.mu.Unlock()

	unassigned, err := c.rooms.UnassignHousekeeper(ctx, name)
	log.Info("Housekeeper deleted", "name", name, "roomsUnassigned", unassigned)

	return true, err
}

// snapshot must be called with mu held.
func (c *HousekeepersController) snapshot() RosterState {
	state := c.state
	state.Housekeepers = append([]Housekeeper{}, c.state.Housekeepers...)
	return state
}
