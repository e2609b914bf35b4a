package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/retry"
)

// Manager owns the ledger database connection
type Manager struct {
	config       *Config
	db           *gorm.DB
	sqlDB        *sql.DB
	monitor      *PoolMonitor
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens the connection pool, retrying while the database is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	policy := retry.Config{
		MaxAttempts:   max(m.config.RetryAttempts, 1),
		RetryInterval: m.config.RetryDelay,
		MaxInterval:   max(m.config.RetryDelay*4, time.Second),
		JitterFactor:  0.2,
	}

	var gormDB *gorm.DB
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		db, err := gorm.Open(postgres.Open(m.config.DSN()), &gorm.Config{
			Logger:         NewGormLogger(m.logger, m.timeProvider, m.config.LogLevel),
			NowFunc:        m.timeProvider.Now,
			TranslateError: true,
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return err
		}

		gormDB = db
		return nil
	}, nil, m.logger, "database connect")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", policy.MaxAttempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.db = gormDB
	m.sqlDB = sqlDB
	m.monitor = NewPoolMonitor(sqlDB, m.logger, 0.8)
	m.monitor.Start(30 * time.Second)

	m.logger.Info("Connected to database", map[string]any{
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})
	return m.db, nil
}

// Migrate brings the schema to the current version
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrator(m.db, m.logger, m.timeProvider).Migrate(ctx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.sqlDB == nil {
		return fmt.Errorf("database is not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
	defer cancel()
	return m.sqlDB.PingContext(ctx)
}

// PoolStats returns the latest connection pool snapshot
func (m *Manager) PoolStats() PoolStats {
	if m.monitor == nil {
		return PoolStats{}
	}
	return m.monitor.Stats()
}

// UnitOfWork creates a unit of work bound to this connection
func (m *Manager) UnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger)
}

// Close stops monitoring and closes the pool
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.monitor != nil {
		m.monitor.Stop()
	}
	if m.sqlDB == nil {
		return nil
	}
	return m.sqlDB.Close()
}
