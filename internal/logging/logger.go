// Package logging provides the logging abstraction used across customer-grouper.
// Components depend on the Logger interface; the logrus-backed adapter is wired
// in by the container and a capturing mock is available for tests.
package logging

// Logger defines structured logging for the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger Logger = NewLogrusAdapter("info", "text")

// GetLogger returns the process-wide default logger. Commands replace it once
// configuration is loaded.
func GetLogger() Logger {
	return defaultLogger
}

// SetLogger replaces the process-wide default logger. Nil is ignored.
func SetLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
