package initialize

import (
	"context"
	"roomboard/internal/logger"
	"roomboard/internal/repositories"
	"roomboard/internal/store"
)

// InitializeState persists the default login roster when none has been saved,
// so a fresh database starts with a usable admin account.
func InitializeState(
	ctx context.Context,
	boardStore store.Store,
	repos repositories.Repository,
	log logger.Logger,
) error {
	log = log.Function("InitializeState")

	_, found, err := boardStore.Get(ctx, store.KeyUsers)
	if err != nil {
		return log.Err("failed to read user roster", err)
	}

	if found {
		log.Info("User roster already present")
		return nil
	}

	if err := repos.User.SaveRoster(ctx, repositories.DefaultRoster()); err != nil {
		return log.Err("failed to save default roster", err)
	}

	log.Info("Saved default user roster")
	return nil
}
