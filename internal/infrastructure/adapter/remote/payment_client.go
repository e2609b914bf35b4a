package remote

import (
	"context"
	"net/http"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// ServicePayment names the payment-delivery service in errors, logs and metrics
const ServicePayment = "payment-delivery"

// PaymentClient submits transfers to the payment-delivery service
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
	guard      *guard
	logger     coreport.Logger
}

// NewPaymentClient creates a client for the payment-delivery service at baseURL
func NewPaymentClient(
	baseURL string,
	httpClient *http.Client,
	breaker BreakerConfig,
	tp coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *PaymentClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		guard:      newGuard(ServicePayment, breaker, tp, logger, metrics),
		logger:     logger,
	}
}

// MakeTransfer submits the payment. Every failure is reported as a DownstreamError.
func (c *PaymentClient) MakeTransfer(ctx context.Context, req *entity.PaymentRequest) (*entity.PaymentResponse, error) {
	url := joinURL(c.baseURL, "/v1/payment/make-transfer")

	var payment *entity.PaymentResponse
	err := c.guard.call(ctx, func(ctx context.Context) error {
		var out entity.PaymentResponse
		if err := doJSON(ctx, c.httpClient, http.MethodPost, url, req, &out); err != nil {
			return asDownstream(ServicePayment, err)
		}
		if out != (entity.PaymentResponse{}) {
			payment = &out
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("Payment delivery failed", map[string]any{
			"transaction_id": req.TransactionID,
			"error":          err.Error(),
		})
		return nil, err
	}

	return payment, nil
}
