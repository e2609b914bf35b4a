package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
)

// EventStreamHandler streams saga events from the in-process broadcast as server-sent events
type EventStreamHandler struct {
	broadcaster messaging.Broadcaster
	heartbeat   time.Duration
	logger      coreport.Logger
}

// NewEventStreamHandler creates a stream handler sending a heartbeat comment every interval
func NewEventStreamHandler(broadcaster messaging.Broadcaster, heartbeat time.Duration, logger coreport.Logger) *EventStreamHandler {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &EventStreamHandler{
		broadcaster: broadcaster,
		heartbeat:   heartbeat,
		logger:      logger,
	}
}

// StreamEvents handles GET /v1/transaction/events
func (h *EventStreamHandler) StreamEvents(c *gin.Context) {
	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	requestID := logger.RequestIDFromContext(c.Request.Context())
	h.logger.Info("Event stream opened", map[string]any{"request_id": requestID})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	sent := 0
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Status), event)
			sent++
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": heartbeat\n\n")
			return err == nil
		case <-c.Request.Context().Done():
			return false
		}
	})

	h.logger.Info("Event stream closed", map[string]any{
		"request_id": requestID,
		"events":     sent,
	})
}
