// Package logging provides the structured logger used across the bridge.
//
// It is a thin wrapper around log/slog that applies the configured level,
// format, and output, and stamps every record with the service name and
// build version. Components receive a *Logger (or a narrow logging
// interface) via dependency injection; there is no global logger.
package logging
