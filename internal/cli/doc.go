// Package cli defines the plantbuddy command tree with cobra.
//
//	plantbuddy                     interactive TUI
//	plantbuddy today [-f filter]   print today's list (table or --json)
//	plantbuddy water <id>...       mark plants watered, then reload
//	plantbuddy logs [-n lines]     print the end of the log file
//
// --config, --prefs, --api-url and --token apply to every command. The
// scriptable commands drive the same state.Store as the TUI, so the commit
// rules (one request per selection, reload only on success, ok=false is a
// failure) are identical.
package cli
