package dto

// HealthResponse reports the state of the service and its dependencies
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}
