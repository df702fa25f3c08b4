package app

import (
	"context"
	"roomboard/config"
	"roomboard/internal/controllers"
	"roomboard/internal/database"
	"roomboard/internal/events"
	"roomboard/internal/handlers/middleware"
	"roomboard/internal/jobs"
	"roomboard/internal/logger"
	"roomboard/internal/repositories"
	"roomboard/internal/services"
	"roomboard/internal/store"
)

type App struct {
	Database   database.DB
	Store      store.Store
	Middleware middleware.Middleware
	EventBus   *events.EventBus
	Config     config.Config

	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers

	LedgerDispatcher *services.LedgerDispatcher
	CleaningNotifier *services.CleaningNotifier
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(context.Background(), config)
}

// NewWithConfig opens the connections the configured store driver needs and
// builds the app on top of them.
func NewWithConfig(ctx context.Context, config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	boardStore, err := store.NewFromDriver(db, config.StoreDriver)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to create store", err, "driver", config.StoreDriver)
	}

	app, err := Build(ctx, config, db, boardStore)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// Build wires services, repositories and controllers over an already opened store.
func Build(ctx context.Context, config config.Config, db database.DB, boardStore store.Store) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache)
	svc := services.New(config)
	repos := repositories.New(boardStore)
	ctrls := controllers.New(ctx, svc, repos, eventBus, config)

	ledgerDispatcher := services.NewLedgerDispatcher(svc.Ledger, config.RemoteTimeout())
	ledgerDispatcher.Register(eventBus)

	cleaningNotifier := services.NewCleaningNotifier(ctrls.Auth, ctrls.Notifications)
	cleaningNotifier.Register(eventBus)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(svc.Scheduler, ctrls); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := svc.Scheduler.Start(); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:         db,
		Store:            boardStore,
		Middleware:       middleware.New(config, ctrls.Auth),
		EventBus:         eventBus,
		Config:           config,
		Services:         svc,
		Repositories:     repos,
		Controllers:      ctrls,
		LedgerDispatcher: ledgerDispatcher,
		CleaningNotifier: cleaningNotifier,
	}

	if err := app.validate(); err != nil {
		_ = app.Services.Scheduler.Stop()
		_ = app.EventBus.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Store == nil {
		return log.ErrMsg("store is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Roster,
		a.Services.Ledger,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.Rooms,
		a.Controllers.History,
		a.Controllers.Housekeepers,
		a.Controllers.Notifications,
		a.Controllers.Ledger,
		a.LedgerDispatcher,
		a.CleaningNotifier,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
