package migration

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/model"
)

// CurrentSchemaVersion is the schema version this build expects
const CurrentSchemaVersion = "1.1.0"

// step upgrades the schema from the version before it to Version
type step struct {
	Version string
	Details string
	Apply   func(ctx context.Context, db *gorm.DB) error
}

// Migrator applies schema steps in order and records each in schema_versions
type Migrator struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	steps        []step
}

// NewMigrator creates a migrator for the ledger schema
func NewMigrator(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Migrator {
	return &Migrator{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		steps: []step{
			{
				Version: "1.0.0",
				Details: "Create transaction table",
				Apply: func(ctx context.Context, db *gorm.DB) error {
					return db.WithContext(ctx).AutoMigrate(&model.Transaction{})
				},
			},
			{
				Version: "1.1.0",
				Details: "Index transactions by account and open status",
				Apply:   createLookupIndexes,
			},
		},
	}
}

// Migrate applies every step newer than the recorded version
func (m *Migrator) Migrate(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("failed to create schema version table: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": current,
		})
		return nil
	}

	for _, s := range m.pending(current) {
		m.logger.Info("Applying migration", map[string]any{
			"from":    current,
			"version": s.Version,
			"details": s.Details,
		})

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.Apply(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&model.MigrationVersion{
				Version:   s.Version,
				AppliedAt: m.timeProvider.Now(),
				Details:   s.Details,
			}).Error
		})
		if err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"version": s.Version,
				"error":   err.Error(),
			})
			return fmt.Errorf("migration %s failed: %w", s.Version, err)
		}
		current = s.Version
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": current,
	})
	return nil
}

// CurrentVersion returns the most recently applied version, or "" for a fresh database
func (m *Migrator) CurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	err := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

func (m *Migrator) pending(current string) []step {
	if current == "" {
		return m.steps
	}
	for i, s := range m.steps {
		if s.Version == current {
			return m.steps[i+1:]
		}
	}
	// Unknown version: rerun everything, each step is idempotent
	return m.steps
}

func createLookupIndexes(ctx context.Context, db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transaction_account_created ON transaction (account_id, created_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_transaction_open ON transaction (transact_status) WHERE closed = false",
	}
	for _, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
