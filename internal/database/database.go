package database

import (
	"context"
	"fmt"
	"log/slog"
	"roomboard/config"
	"roomboard/internal/logger"
	"time"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type DB struct {
	SQL   *gorm.DB
	Cache valkey.Client
	log   logger.Logger
}

// New opens the backends the configured store driver needs. The valkey client
// is also opened whenever an address is configured so events can fan out.
func New(cfg config.Config) (DB, error) {
	log := logger.New("database").Function("New")
	log.Info("Initializing database", "storeDriver", cfg.StoreDriver)

	db := &DB{log: logger.New("database")}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := db.initializePostgresDB(cfg); err != nil {
			return DB{}, log.Err("failed to initialize postgres database", err)
		}
	case config.StoreDriverSQLite:
		if err := db.initializeSQLiteDB(cfg.DatabasePath); err != nil {
			return DB{}, log.Err("failed to initialize sqlite database", err)
		}
	}

	if cfg.DatabaseCacheAddress != "" {
		if err := db.initializeCacheDB(cfg); err != nil {
			return DB{}, log.Err("failed to initialize cache database", err)
		}
	}

	return *db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormLogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
			gormLogger.Config{
				SlowThreshold:             5 * time.Second,
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
			},
		),
		SkipDefaultTransaction: true,
	}
}

func (s *DB) initializePostgresDB(config config.Config) error {
	log := s.log.Function("initializePostgresDB")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseName,
	)

	log.Info("Connecting to PostgreSQL",
		"host", config.DatabaseHost,
		"port", config.DatabasePort,
		"database", config.DatabaseName,
	)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return log.Err("failed to open PostgreSQL database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping PostgreSQL database through GORM", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db
	log.Info("Successfully connected to PostgreSQL with GORM")
	return nil
}

func (s *DB) initializeSQLiteDB(path string) error {
	log := s.log.Function("initializeSQLiteDB")

	db, err := OpenSQLite(path)
	if err != nil {
		return log.Err("failed to open sqlite database", err, "path", path)
	}

	s.SQL = db
	log.Info("Successfully opened sqlite database", "path", path)
	return nil
}

// OpenSQLite opens a sqlite database and migrates the state table. Tests pass
// "file::memory:" for a throwaway database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers; one connection keeps in-memory databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache != nil {
		s.Cache.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}
