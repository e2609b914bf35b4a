package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// PoolStats is a snapshot of the connection pool
type PoolStats struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor samples sql.DBStats periodically and warns when the pool is nearly exhausted
type PoolMonitor struct {
	db        *sql.DB
	logger    coreport.Logger
	threshold float64

	mu   sync.RWMutex
	last PoolStats

	stop     chan struct{}
	stopOnce sync.Once
}

// NewPoolMonitor creates a monitor warning once InUse exceeds threshold of MaxOpenConnections
func NewPoolMonitor(db *sql.DB, logger coreport.Logger, threshold float64) *PoolMonitor {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &PoolMonitor{
		db:        db,
		logger:    logger,
		threshold: threshold,
		stop:      make(chan struct{}),
	}
}

// Start samples the pool immediately and then every interval until Stop is called
func (m *PoolMonitor) Start(interval time.Duration) {
	m.Sample()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sample()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends sampling; it is safe to call more than once
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Stats returns the latest snapshot
func (m *PoolMonitor) Stats() PoolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Sample records the current pool statistics
func (m *PoolMonitor) Sample() PoolStats {
	stats := m.db.Stats()
	snapshot := PoolStats{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}

	m.mu.Lock()
	m.last = snapshot
	m.mu.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*m.threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
	return snapshot
}
