package core

import (
	"context"
	"time"
)

// Duration is the span type the ledger measures remote calls, retries and slow queries in
type Duration time.Duration

// Common duration constants
const (
	Millisecond Duration = Duration(time.Millisecond)
	Second               = Duration(time.Second)
	Minute               = Duration(time.Minute)
)

// Std converts Duration to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock behind ledger timestamps, event times and call deadlines
type TimeProvider interface {
	// Now stamps created dates and saga events
	Now() time.Time
	// Since measures remote call latency and query time
	Since(t time.Time) Duration
	// WithTimeout bounds each remote call
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
}
