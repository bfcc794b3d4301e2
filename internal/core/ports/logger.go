package ports

import "io"

// Logger is the logging abstraction used across the application.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)

	// InfoWith logs an informational message with structured key/value
	// attributes. Keys and values alternate, as in log/slog.
	InfoWith(msg string, args ...any)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error, rendering zerr chains hierarchically.
	Error(err error)

	// SetOutput redirects log output. Used for testing.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
