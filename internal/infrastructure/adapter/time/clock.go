package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// UTCClock implements core.TimeProvider on the system clock, reporting instants in UTC
// so ledger rows and event timestamps never carry the host's zone.
type UTCClock struct{}

// NewUTCClock creates a system clock
func NewUTCClock() core.TimeProvider {
	return UTCClock{}
}

func (UTCClock) Now() time.Time                  { return time.Now().UTC() }
func (UTCClock) Since(t time.Time) core.Duration { return core.Duration(time.Since(t)) }

func (UTCClock) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

// ManualClock is a core.TimeProvider whose time only moves when told to.
// Timeouts still use real contexts so cancellation keeps working.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start.UTC()}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d core.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d.Std())
	c.mu.Unlock()
}

func (c *ManualClock) Since(t time.Time) core.Duration { return core.Duration(c.Now().Sub(t)) }

func (c *ManualClock) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
