package config

import (
	"roomboard/internal/logger"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverValkey   = "valkey"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	StoreDriver          string `mapstructure:"STORE_DRIVER"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabasePath         string `mapstructure:"DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret        string `mapstructure:"SESSION_SECRET"`
	RosterServiceURL     string `mapstructure:"ROSTER_SERVICE_URL"`
	LedgerServiceURL     string `mapstructure:"LEDGER_SERVICE_URL"`
	RemoteTimeoutSeconds int    `mapstructure:"REMOTE_TIMEOUT_SECONDS"`
	NotificationTTLHours int    `mapstructure:"NOTIFICATION_TTL_HOURS"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "STORE_DRIVER",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PATH",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
	"CORS_ALLOW_ORIGINS", "SESSION_SECRET",
	"ROSTER_SERVICE_URL", "LEDGER_SERVICE_URL", "REMOTE_TIMEOUT_SECONDS",
	"NOTIFICATION_TTL_HOURS", "SCHEDULER_ENABLED",
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	v := viper.New()
	v.AutomaticEnv()

	for _, env := range envVars {
		if err := v.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if v.IsSet("SERVER_PORT") && v.IsSet("STORE_DRIVER") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		v.SetConfigFile(".env.local")
		if err := v.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}
	config.StoreDriver = strings.ToLower(config.StoreDriver)

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config",
		"environment", config.Environment,
		"storeDriver", config.StoreDriver,
		"port", config.ServerPort,
	)
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("SERVER_PORT", 8288)
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_PATH", "roomboard.db")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("REMOTE_TIMEOUT_SECONDS", 10)
	v.SetDefault("NOTIFICATION_TTL_HOURS", 24)
}

// RemoteTimeout is the hard client-side limit for roster and ledger calls.
func (c Config) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutSeconds) * time.Second
}

func (c Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLHours) * time.Hour
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	if config.SessionSecret == "" {
		return log.ErrMsg("Fatal error: SESSION_SECRET is required")
	}

	if config.RemoteTimeoutSeconds <= 0 {
		return log.Error("Fatal error: invalid remote timeout", "seconds", config.RemoteTimeoutSeconds)
	}

	if config.NotificationTTLHours <= 0 {
		return log.Error("Fatal error: invalid notification ttl", "hours", config.NotificationTTLHours)
	}

	switch config.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverSQLite:
		if config.DatabasePath == "" {
			return log.ErrMsg("Fatal error: DB_PATH required for sqlite store")
		}
	case StoreDriverPostgres:
		if config.DatabaseHost == "" || config.DatabaseName == "" || config.DatabaseUser == "" {
			return log.ErrMsg("Fatal error: DB_HOST, DB_NAME and DB_USER required for postgres store")
		}
	case StoreDriverValkey:
		if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
			return log.ErrMsg("Fatal error: DB_CACHE_ADDRESS and DB_CACHE_PORT required for valkey store")
		}
	default:
		return log.Error("Fatal error: unknown store driver", "driver", config.StoreDriver)
	}

	return nil
}
