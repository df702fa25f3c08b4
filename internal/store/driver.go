package store

import (
	"roomboard/config"
	"roomboard/internal/database"
	"roomboard/internal/logger"
)

// NewFromDriver picks the backend named by STORE_DRIVER from the opened connections.
func NewFromDriver(db database.DB, driver string) (Store, error) {
	log := logger.New("store").Function("NewFromDriver")

	switch driver {
	case config.StoreDriverMemory:
		log.Warn("Using in-memory store, board state is lost on restart")
		return NewMemoryStore(), nil
	case config.StoreDriverValkey:
		if db.Cache == nil {
			return nil, log.ErrMsg("valkey store selected without a cache connection")
		}
		return NewCacheStore(db.Cache), nil
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		if db.SQL == nil {
			return nil, log.Error("sql store selected without a database connection", "driver", driver)
		}
		return NewSQLStore(db.SQL), nil
	default:
		return nil, log.Error("unknown store driver", "driver", driver)
	}
}
