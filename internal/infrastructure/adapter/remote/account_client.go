package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// ServiceAccount names the account service in errors, logs and metrics
const ServiceAccount = "account-service"

// AccountClient looks up customers and accounts in the account service
type AccountClient struct {
	baseURL    string
	httpClient *http.Client
	guard      *guard
	logger     coreport.Logger
}

// NewAccountClient creates a client for the account service at baseURL
func NewAccountClient(
	baseURL string,
	httpClient *http.Client,
	breaker BreakerConfig,
	tp coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *AccountClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AccountClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		guard:      newGuard(ServiceAccount, breaker, tp, logger, metrics),
		logger:     logger,
	}
}

// GetCustomerAccountDetails returns the customer owning accountID.
// A 404 becomes a NotFoundError; any other failure a DownstreamError.
func (c *AccountClient) GetCustomerAccountDetails(ctx context.Context, accountID uint64) (*entity.CustomerResponse, error) {
	url := joinURL(c.baseURL, "/v1/account/customer-acct-details/"+strconv.FormatUint(accountID, 10))

	var customer entity.CustomerResponse
	err := c.guard.call(ctx, func(ctx context.Context) error {
		err := doJSON(ctx, c.httpClient, http.MethodGet, url, nil, &customer)

		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			message := se.Message
			if message == "" {
				message = fmt.Sprintf("account %d not found", accountID)
			}
			return errs.NewNotFoundError("account", strconv.FormatUint(accountID, 10), message)
		}
		return asDownstream(ServiceAccount, err)
	})
	if err != nil {
		c.logger.Debug("Account lookup failed", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return &customer, nil
}
