package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
)

// maxErrorBody limits how much of a failed response body is read into an error
const maxErrorBody = 4 << 10

// errorBody is the error envelope returned by the account and payment services
type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// statusError carries a non-2xx answer before it is mapped to the domain taxonomy
type statusError struct {
	StatusCode int
	Message    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// doJSON sends body (if any) as JSON and decodes a 2xx answer into out.
// Non-2xx answers are returned as *statusError.
func doJSON(ctx context.Context, httpClient *http.Client, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the message from an error envelope, falling back to the raw body
func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))

	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}

// joinURL appends path to base without doubling the slash
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// asDownstream wraps any failure that is not already part of the error taxonomy
func asDownstream(service string, err error) error {
	if err == nil || errs.IsDownstreamError(err) || errs.IsNotFoundError(err) {
		return err
	}
	if se, ok := err.(*statusError); ok {
		return errs.NewDownstreamError(service, se.StatusCode, se.Message, nil)
	}
	return errs.NewDownstreamError(service, 0, err.Error(), err)
}
