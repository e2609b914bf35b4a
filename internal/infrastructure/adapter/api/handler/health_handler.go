package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/dto"
)

// Health states
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the state of the service dependencies
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	logger  coreport.Logger
}

// NewHealthHandler creates a health handler running each check within timeout
func NewHealthHandler(checks map[string]HealthCheck, timeout time.Duration, logger coreport.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{
		checks:  checks,
		timeout: timeout,
		logger:  logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{Status: StatusUp, Dependencies: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("Health check failed", map[string]any{
				"dependency": name,
				"error":      err.Error(),
			})
			resp.Dependencies[name] = StatusDown
			resp.Status = StatusDown
			continue
		}
		resp.Dependencies[name] = StatusUp
	}

	status := http.StatusOK
	if resp.Status == StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
