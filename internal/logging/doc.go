// Package logging builds slog loggers for the folio CLI and browse mode.
//
// It supports a human-oriented console format and a machine-oriented JSON
// format, writes to stdout/stderr and an optional log file, and derives its
// settings from the application config. Obtain loggers through New or
// NewFromConfig so every component shares the same output conventions.
package logging
