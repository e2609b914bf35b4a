package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/config"
)

func validConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         5432,
		Username:     "postgres",
		Database:     "ledger",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		QueryTimeout: 5 * time.Second,
		LogLevel:     "warn",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "missing user", mutate: func(c *Config) { c.Username = "" }, wantErr: "username"},
		{name: "missing name", mutate: func(c *Config) { c.Database = "" }, wantErr: "name"},
		{name: "bad ssl mode", mutate: func(c *Config) { c.SSLMode = "sometimes" }, wantErr: "SSL"},
		{name: "idle above open", mutate: func(c *Config) { c.MaxIdleConns = 20 }, wantErr: "idle"},
		{name: "zero timeout", mutate: func(c *Config) { c.QueryTimeout = 0 }, wantErr: "timeout"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := validConfig()
	c.Password = "secret"

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=ledger sslmode=disable", c.DSN())
}

func TestFromSettings(t *testing.T) {
	c := FromSettings(config.DatabaseConfig{
		Host:          "db",
		Port:          6543,
		Username:      "ledger",
		Database:      "ledger",
		SSLMode:       "require",
		MaxOpenConns:  20,
		QueryTimeout:  time.Second,
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
	})

	assert.Equal(t, "db", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, 3, c.RetryAttempts)
	assert.Equal(t, 2*time.Second, c.RetryDelay)
}
