package gcloud

// Logger is the structured logging interface accepted by the client. Any
// logging backend can be adapted to it; the library never logs through a
// global.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards all log output.
type NopLogger struct{}

// NewNopLogger creates a logger that discards everything.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (l *NopLogger) Debug(msg string, fields map[string]interface{}) {}

func (l *NopLogger) Info(msg string, fields map[string]interface{}) {}

func (l *NopLogger) Warn(msg string, fields map[string]interface{}) {}

func (l *NopLogger) Error(msg string, fields map[string]interface{}) {}
