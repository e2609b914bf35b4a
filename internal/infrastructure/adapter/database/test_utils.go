package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for testing against a real PostgreSQL
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the database named by TL_TEST_DB_* and migrates it.
// The test is skipped when TL_TEST_DB_HOST is unset.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("TL_TEST_DB_HOST")
	if !ok || host == "" {
		t.Skip("TL_TEST_DB_HOST not set, skipping database test")
	}

	timeProvider := timeprovider.NewUTCClock()
	config := &Config{
		Host:            host,
		Port:            getEnvIntOrDefault("TL_TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("TL_TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TL_TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TL_TEST_DB_NAME", "transaction_ledger_test"),
		SSLMode:         getEnvOrDefault("TL_TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
		RetryDelay:      time.Second,
	}

	m := &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}

	ctx := context.Background()
	if _, err := m.Manager.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := m.Manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	m.TruncateTransactions(t)

	return m
}

// TruncateTransactions empties the transaction table
func (m *TestDBManager) TruncateTransactions(t *testing.T) {
	t.Helper()

	if err := m.Manager.DB().Exec("TRUNCATE TABLE transaction RESTART IDENTITY").Error; err != nil {
		t.Fatalf("Failed to truncate transactions: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
