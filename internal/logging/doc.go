// Package logging provides slog-based structured logging for TagSight.
//
// Two output formats are supported: a human-oriented console format used
// when running interactively and a JSON format for log shipping. Helper
// constructors mirror the slog attr functions so call sites stay terse.
package logging
