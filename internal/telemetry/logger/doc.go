// Package logger provides structured logging for nullmap tools.
//
// This package wraps log/slog:
//
//   - logger.go: configuration, global level, default logger
//   - context.go: context-aware logging with run IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation of the run ID of a workload
package logger
