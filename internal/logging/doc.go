// Package logging constructs the slog loggers used across rollcall.
//
// It supplies console and JSON handler formats, level parsing, component
// loggers with standardized attribute keys, and a no-op logger for tests.
// Obtain loggers through this package so log output stays uniform between
// the CLI commands and the ingestion/report internals.
package logging
