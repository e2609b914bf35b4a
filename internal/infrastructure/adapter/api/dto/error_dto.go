package dto

import "net/http"

// ErrorResponse is the uniform error body returned by every endpoint
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// NewErrorResponse builds an error body for the given status code
func NewErrorResponse(status int, message, path string) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
		Path:    path,
	}
}
