// Package logger declares the logging interface the planning core writes
// to. Adapters live in infra/logger so core packages stay free of any
// logging backend.
package logger

// Logger is the leveled logger the scheduling pipeline reports through.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a debug message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
