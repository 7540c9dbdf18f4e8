// Package state owns the plant list client state: the last snapshot from the
// server, the user's selection, the active filter, the load lifecycle and the
// commit-in-flight flag.
//
// # Ownership
//
// Store is the only writer. Its methods are the mutation entry points and are
// serialised with a mutex, so the Bubble Tea update loop, the auto-refresh
// poller and the CLI subcommands can all drive the same Store. Readers call
// Snapshot and get an independent copy.
//
// # Load lifecycle
//
//	BeginLoad()                   -> Loading, error cleared, epoch N
//	FinishLoad(N, items, nil)     -> Ready, items replaced wholesale, error kept
//	FinishLoad(N, nil, err)       -> Failed(message), items kept
//	FinishLoad(M != N, ...)       -> discarded
//
// Every BeginLoad bumps the epoch, so a slow response from an older reload can
// never overwrite a newer one.
//
// # Selection and filter
//
// The selection is a set of ids independent of the filter: switching filters
// never adds or removes members, SelectAllVisible only ever adds, and ids of
// plants that disappeared from the list are left for the server to reject.
// Visible is a pure function of (items, filter).
//
// # Commit protocol
//
//	BeginCommit()                 -> ids, true   (in flight, error cleared)
//	                              -> nil, false  (empty selection or in flight)
//	FinishCommit(res, nil), ok    -> selection cleared, caller reloads
//	FinishCommit(res, err)        -> message recorded, selection kept
//
// A response with ok=false counts as a failure (ErrNotConfirmed). Reload and
// MarkWatered compose these steps for callers that can block.
package state
