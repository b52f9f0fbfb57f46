// Package logging builds the slog loggers used across the daemon and CLI.
//
// It supports a compact console format and a JSON format, fans output out to
// stdout plus the daemon log file, and re-exports the slog attribute
// constructors so call sites stay terse. NewComponentLogger tags records with
// the subsystem that produced them.
package logging
