package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
)

// ErrorHandler middleware recovers from panics and returns a 500 error body
func ErrorHandler(log coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("Panic recovered in API request", map[string]any{
					"error":      fmt.Sprint(recovered),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": logger.RequestIDFromContext(c.Request.Context()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
					http.StatusInternalServerError, errs.ErrInternalServer.Error(), c.Request.URL.Path,
				))
			}
		}()

		c.Next()
	}
}

// RespondError renders err with the status its taxonomy maps to.
// Server-side failures are logged with their structured fields; the body never leaks internals.
func RespondError(c *gin.Context, log coreport.Logger, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()

	fields := errs.LogFields(err)
	fields["path"] = c.Request.URL.Path
	fields["status"] = status
	fields["request_id"] = logger.RequestIDFromContext(c.Request.Context())

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Error("Request failed", fields)
		if !errs.IsDownstreamError(err) && !errs.IsEmitError(err) {
			message = errs.ErrInternalServer.Error()
		}
	} else {
		log.Info("Request rejected", fields)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, message, c.Request.URL.Path))
}
