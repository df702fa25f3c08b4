package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"roomboard/cmd/migration/initialize"
	"roomboard/cmd/migration/seed"
	"roomboard/config"
	"roomboard/internal/database"
	"roomboard/internal/logger"
	"roomboard/internal/repositories"
	"roomboard/internal/store"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	MIGRATION_PATH = "cmd/migration/migrations"
	MIGRATION_DB   = "postgres"
)

func main() {
	log := logger.New("migrations").Function("main")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	if config.StoreDriver == "memory" {
		log.Error("nothing to migrate for the in-memory store", "driver", config.StoreDriver)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Er("failed to close database", closeErr)
		}
	}()

	migrationType := "up"
	if len(os.Args) > 1 {
		migrationType = os.Args[1]
	}

	ctx := context.Background()

	switch migrationType {
	case "up":
		err = migrateUp(ctx, db, config, log)
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				log.Er("failed to parse step", err)
				os.Exit(1)
			}
		}
		err = migrateDown(steps, config, log)
	case "seed":
		err = migrateSeed(ctx, db, config, log)
	default:
		err = log.Error("unknown migration type", "type", migrationType)
	}

	if err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	log.Info("Migrations complete")
}

func openStore(db database.DB, config config.Config) (store.Store, repositories.Repository, error) {
	boardStore, err := store.NewFromDriver(db, config.StoreDriver)
	if err != nil {
		return nil, repositories.Repository{}, err
	}
	return boardStore, repositories.New(boardStore), nil
}

func migrateUp(ctx context.Context, db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("migrateUp")
	log.Info("Running migrations up", "driver", config.StoreDriver)

	if config.StoreDriver == "postgres" {
		if err := runMigrations(config, log, migrate.Up); err != nil {
			return log.Err("failed to run migrations", err)
		}
	}

	if db.SQL != nil {
		if err := database.MigrateModels(db.SQL); err != nil {
			return log.Err("failed to auto migrate", err)
		}
	}

	boardStore, repos, err := openStore(db, config)
	if err != nil {
		return log.Err("failed to open store", err)
	}

	if err := initialize.InitializeState(ctx, boardStore, repos, log); err != nil {
		return log.Err("failed to initialize state", err)
	}

	return nil
}

func migrateDown(steps int, config config.Config, log logger.Logger) error {
	log = log.Function("migrateDown")
	log.Info("Running migrations down")

	if config.StoreDriver != "postgres" {
		return log.Error("down migrations are only supported for postgres", "driver", config.StoreDriver)
	}

	for i := 0; i < steps; i++ {
		if err := runMigrations(config, log, migrate.Down); err != nil {
			return log.Err("failed to run migrations", err)
		}
	}

	return nil
}

func migrateSeed(ctx context.Context, db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("migrateSeed")
	log.Info("Running seed")

	if db.Cache != nil {
		if err := db.FlushCache(ctx); err != nil {
			return log.Err("failed to flush cache database", err)
		}
	}

	if err := migrateUp(ctx, db, config, log); err != nil {
		return log.Err("failed to migrate before seeding", err)
	}

	_, repos, err := openStore(db, config)
	if err != nil {
		return log.Err("failed to open store", err)
	}

	if err := seed.Seed(ctx, repos, time.Now(), log); err != nil {
		return log.Err("failed to seed database", err)
	}

	return nil
}

func runMigrations(
	config config.Config,
	log logger.Logger,
	direction migrate.MigrationDirection,
) error {
	log = log.Function("runMigrations")

	if _, err := os.Stat(MIGRATION_PATH); os.IsNotExist(err) {
		log.Info("Migrations directory does not exist, skipping file-based migrations")
		return nil
	}

	files, err := filepath.Glob(filepath.Join(MIGRATION_PATH, "*.sql"))
	if err != nil {
		return log.Err("failed to check for migration files", err)
	}

	if len(files) == 0 {
		log.Info("No migration files found, skipping file-based migrations")
		return nil
	}

	migrations := &migrate.FileMigrationSource{
		Dir: MIGRATION_PATH,
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseName,
	)

	sqlDB, err := sql.Open(MIGRATION_DB, dsn)
	if err != nil {
		return log.Err("failed to open database for migrations", err)
	}
	defer func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Er("failed to close database", closeErr)
		}
	}()

	limit := 0
	if direction == migrate.Down {
		limit = 1
	}

	n, err := migrate.ExecMax(sqlDB, MIGRATION_DB, migrations, direction, limit)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	if n == 0 {
		log.Info("No migrations to apply")
	} else {
		log.Info("Applied migrations", "migrationCount", n)
	}

	return nil
}
