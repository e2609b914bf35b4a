package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/messaging"
)

// streamRecorder adds the CloseNotifier gin's Stream requires
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestEventStreamHandler_StreamEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	events := make(chan *entity.SagaEvent, 2)
	events <- &entity.SagaEvent{CorrelationID: "evt-1", Status: entity.EventTransactionInitiated}
	events <- &entity.SagaEvent{CorrelationID: "evt-2", Status: entity.EventTransactionFailed, Error: true}
	close(events)

	cancelled := false
	mockBroadcaster := messaging.NewMockBroadcaster(t)
	mockBroadcaster.EXPECT().Subscribe().Return((<-chan *entity.SagaEvent)(events), func() { cancelled = true })

	h := NewEventStreamHandler(mockBroadcaster, time.Minute, logger.NewNoopLogger())
	router := gin.New()
	router.GET("/v1/transaction/events", h.StreamEvents)

	rec := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transaction/events", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event:"+string(entity.EventTransactionInitiated))
	assert.Contains(t, body, "evt-1")
	assert.Contains(t, body, "event:"+string(entity.EventTransactionFailed))
	assert.True(t, cancelled)
}
