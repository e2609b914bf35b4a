package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
)

// Handler processes one raw stream message.
// Returning an error leaves the message pending, except for errs.ErrInvalidEvent.
type Handler func(ctx context.Context, payload []byte) error

// JSONHandler decodes the payload into T before calling fn.
// Payloads that do not decode are reported as invalid events.
func JSONHandler[T any](fn func(ctx context.Context, event *T) error) Handler {
	return func(ctx context.Context, payload []byte) error {
		var event T
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalidEvent, err)
		}
		return fn(ctx, &event)
	}
}
