package core

// LogLevel is the minimum severity a Logger emits
type LogLevel int

const (
	// LogLevelDebug covers per-event dispatch and publish traces
	LogLevelDebug LogLevel = iota
	// LogLevelInfo covers saga steps and request summaries
	LogLevelInfo
	// LogLevelWarn covers compensations, skipped events and dropped messages
	LogLevelWarn
	// LogLevelError covers store, broker and downstream failures
	LogLevelError
)

// Logger is the structured logger shared by the saga, the orchestrator and the adapters.
// Fields carry correlation ids, transaction ids and error details as key/value pairs.
type Logger interface {
	SetLevel(level LogLevel)
	GetLevel() LogLevel
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)
	// Flush writes buffered entries; called once during shutdown
	Flush() error
}
