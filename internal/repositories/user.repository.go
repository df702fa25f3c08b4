package repositories

import (
	"context"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/store"
)

// DefaultRoster is the login roster used until one has been persisted.
func DefaultRoster() []StoredUser {
	return []StoredUser{
		{Username: "admin@mail.ru", Password: "admin123", Role: RoleAdmin},
		{Username: "maria", Password: "maria123", Role: RoleHousekeeper, HousekeeperName: "Maria"},
	}
}

type UserRepository interface {
	LoadRoster(ctx context.Context) []StoredUser
	SaveRoster(ctx context.Context, users []StoredUser) error
	// LoadSession returns nil when nobody is logged in or the stored session is unreadable.
	LoadSession(ctx context.Context) *Session
	SaveSession(ctx context.Context, session Session) error
	ClearSession(ctx context.Context) error
}

type userRepository struct {
	store store.Store
	log   logger.Logger
}

func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{
		store: s,
		log:   logger.New("userRepository"),
	}
}

func (r *userRepository) LoadRoster(ctx context.Context) []StoredUser {
	users := store.LoadJSON[[]StoredUser](ctx, r.store, store.KeyUsers, nil)
	if users == nil {
		return DefaultRoster()
	}
	return users
}

func (r *userRepository) SaveRoster(ctx context.Context, users []StoredUser) error {
	log := r.log.Function("SaveRoster")

	if err := store.SaveJSON(ctx, r.store, store.KeyUsers, users); err != nil {
		return log.Err("failed to save user roster", err, "count", len(users))
	}

	return nil
}

func (r *userRepository) LoadSession(ctx context.Context) *Session {
	session := store.LoadJSON[*Session](ctx, r.store, store.KeySession, nil)
	if session == nil || session.Username == "" {
		return nil
	}
	return session
}

func (r *userRepository) SaveSession(ctx context.Context, session Session) error {
	log := r.log.Function("SaveSession")

	if err := store.SaveJSON(ctx, r.store, store.KeySession, session); err != nil {
		return log.Err("failed to save session", err, "username", session.Username)
	}

	return nil
}

func (r *userRepository) ClearSession(ctx context.Context) error {
	log := r.log.Function("ClearSession")

	if err := r.store.Delete(ctx, store.KeySession); err != nil {
		return log.Err("failed to clear session", err)
	}

	return nil
}
