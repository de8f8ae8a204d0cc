// Package logging provides structured logging for the mcpdock CLI built on
// log/slog.
//
// It supplies a TTY-optimized colorized text handler for interactive use, a
// JSON handler for machine consumption, and a MultiHandler that fans records
// out to several destinations (used for --log-file).
//
// Non-fatal diagnostics (unresolvable binaries, unmapped commands) are logged
// at Warn level; skipped entries are logged at Debug. Fatal errors do not go
// through this package at all, they surface as errors on the command path.
package logging
