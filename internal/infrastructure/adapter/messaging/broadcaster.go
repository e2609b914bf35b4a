package messaging

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// DestinationBroadcast names the in-process stream in errors and metrics
const DestinationBroadcast = "broadcast"

// ErrBufferFull is returned when the broadcast backlog has no room left
var ErrBufferFull = errors.New("broadcast buffer is full")

// BroadcasterConfig configures the in-process saga event stream
type BroadcasterConfig struct {
	// BufferSize bounds the backlog shared by all subscribers (default: 256)
	BufferSize int
	// SubscriberBuffer bounds each subscriber's own channel (default: 32)
	SubscriberBuffer int
}

type subscriber struct {
	ch   chan *entity.SagaEvent
	done chan struct{}
	once sync.Once
}

// Broadcaster fans saga events out to same-process subscribers.
// Producers never block: TryPublish fails with an EmitError when the backlog is full.
// A slow subscriber holds back delivery for everyone until the backlog drains.
type Broadcaster struct {
	queue            chan *entity.SagaEvent
	subscriberBuffer int
	logger           coreport.Logger

	mu          sync.RWMutex
	closed      bool
	subscribers map[string]*subscriber

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	delivered atomic.Int64
	rejected  atomic.Int64
}

// NewBroadcaster creates a broadcaster and starts its delivery loop
func NewBroadcaster(config BroadcasterConfig, logger coreport.Logger) *Broadcaster {
	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = 32
	}

	b := &Broadcaster{
		queue:            make(chan *entity.SagaEvent, config.BufferSize),
		subscriberBuffer: config.SubscriberBuffer,
		logger:           logger,
		subscribers:      make(map[string]*subscriber),
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}
	go b.run()
	return b
}

// TryPublish enqueues the event without blocking
func (b *Broadcaster) TryPublish(event *entity.SagaEvent) error {
	correlationID := ""
	if event != nil {
		correlationID = event.CorrelationID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.rejected.Add(1)
		return errs.NewEmitError(DestinationBroadcast, correlationID, errs.ErrBroadcasterClosed)
	}

	select {
	case b.queue <- event:
		return nil
	default:
		b.rejected.Add(1)
		return errs.NewEmitError(DestinationBroadcast, correlationID, ErrBufferFull)
	}
}

// Subscribe attaches a subscriber. The returned func detaches it and may be called more than once.
// The channel is closed when the broadcaster shuts down.
func (b *Broadcaster) Subscribe() (<-chan *entity.SagaEvent, func()) {
	id := uuid.NewString()
	sub := &subscriber{
		ch:   make(chan *entity.SagaEvent, b.subscriberBuffer),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.subscribers[id] = sub
	b.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			close(sub.done)
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

// SubscriberCount returns the number of attached subscribers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Stats returns how many deliveries succeeded and how many publishes were rejected
func (b *Broadcaster) Stats() (delivered, rejected int64) {
	return b.delivered.Load(), b.rejected.Load()
}

// Close stops accepting events and drains the backlog until ctx is done.
// Remaining subscriber channels are closed afterwards.
func (b *Broadcaster) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		b.stopOnce.Do(func() { close(b.stop) })
		<-b.done
		return ctx.Err()
	}
}

// run delivers queued events to a snapshot of the current subscribers
func (b *Broadcaster) run() {
	defer func() {
		b.mu.Lock()
		for id, sub := range b.subscribers {
			close(sub.ch)
			delete(b.subscribers, id)
		}
		b.mu.Unlock()
		close(b.done)
	}()

	for event := range b.queue {
		b.mu.RLock()
		targets := make([]*subscriber, 0, len(b.subscribers))
		for _, sub := range b.subscribers {
			targets = append(targets, sub)
		}
		b.mu.RUnlock()

		for _, sub := range targets {
			select {
			case sub.ch <- event:
				b.delivered.Add(1)
			case <-sub.done:
			case <-b.stop:
				b.logger.Warn("Broadcaster stopped with undelivered events", map[string]any{
					"backlog": len(b.queue),
				})
				return
			}
		}
	}
}
