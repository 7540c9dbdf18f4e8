// Package logging sets up plantbuddy's file logger and reads it back.
//
// Open builds a log/slog text logger appending to the configured file; the
// client and the TUI log request failures and sync outcomes through it.
// Tail and Colorize back the `plantbuddy logs` command.
package logging
