// Package logger provides structured logging for the application, built on
// log/slog with a JSON handler and context propagation helpers.
package logger
