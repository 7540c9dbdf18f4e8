// Package ui implements plantbuddy's terminal interface with Bubble Tea.
//
// # Layout
//
//	plantbuddy  ● SYNCED  Overdue: 2  Due: 3  OK: 7  Selected: 2   header
//	f:All  space:Select  a:All  c:Clear  w:Water 2  r:Reload ...  command bar
//	! HTTP 500                                                    error banner
//	› [x] Monstera        Due      due today   3d ago  every 7d   rows
//
// Before the first successful load the rows are skeleton placeholders. After
// that a failed reload keeps the last list on screen under the error banner.
//
// # Data flow
//
// The plant list, the selection and the filter live in a state.Store. Key
// handlers call the store directly for local changes. Network work runs in
// tea.Cmds: reloadCmd calls Store.BeginLoad before fetching and the resulting
// loadedMsg carries the epoch, so a stale response is dropped by FinishLoad.
// commitCmd only returns a command when Store.BeginCommit grants the commit
// slot, which keeps repeated presses of w from sending a second request. A
// successful commit starts a reload and shows a short-lived notice.
//
// Other goroutines that update the store, such as the auto-refresh poller,
// send SyncedMsg so the view catches up.
//
// # Preferences
//
// Theme (T) changes are written to prefs.toml. The filter always starts at
// "all" and is not saved.
package ui
