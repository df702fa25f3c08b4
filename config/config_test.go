package config

import (
	"roomboard/internal/logger"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		ServerPort:           8288,
		StoreDriver:          StoreDriverMemory,
		SessionSecret:        "secret",
		RemoteTimeoutSeconds: 10,
		NotificationTTLHours: 24,
	}
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("test")

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "valid memory config", mutate: func(c *Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.ServerPort = 0 }, expectErr: true},
		{name: "missing session secret", mutate: func(c *Config) { c.SessionSecret = "" }, expectErr: true},
		{name: "zero remote timeout", mutate: func(c *Config) { c.RemoteTimeoutSeconds = 0 }, expectErr: true},
		{name: "zero notification ttl", mutate: func(c *Config) { c.NotificationTTLHours = 0 }, expectErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "mongo" }, expectErr: true},
		{
			name:      "postgres without host",
			mutate:    func(c *Config) { c.StoreDriver = StoreDriverPostgres },
			expectErr: true,
		},
		{
			name: "postgres complete",
			mutate: func(c *Config) {
				c.StoreDriver = StoreDriverPostgres
				c.DatabaseHost = "localhost"
				c.DatabaseName = "roomboard"
				c.DatabaseUser = "roomboard"
			},
		},
		{
			name:      "valkey without address",
			mutate:    func(c *Config) { c.StoreDriver = StoreDriverValkey },
			expectErr: true,
		},
		{
			name:      "sqlite without path",
			mutate:    func(c *Config) { c.StoreDriver = StoreDriverSQLite },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := validateConfig(config, log)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	config := validConfig()

	assert.Equal(t, 10*time.Second, config.RemoteTimeout())
	assert.Equal(t, 24*time.Hour, config.NotificationTTL())
}

func TestInitConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("SESSION_SECRET", "env-secret")

	config, err := InitConfig()

	assert.NoError(t, err)
	assert.Equal(t, 9000, config.ServerPort)
	assert.Equal(t, StoreDriverMemory, config.StoreDriver)
	assert.Equal(t, 10, config.RemoteTimeoutSeconds)
	assert.Equal(t, 24, config.NotificationTTLHours)
}
