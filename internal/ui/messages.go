package ui

import "github.com/plantbuddy/plantbuddy/internal/plants"

// Messages carrying an epoch or id are matched against the model so results
// from superseded requests and timers are dropped.

type loadedMsg struct {
	epoch uint64
	items []plants.Item
	err   error
}

type committedMsg struct {
	ids []int64
	res plants.WaterResult
	err error
}

type noticeClearMsg struct {
	id int
}

// SyncedMsg tells the UI that the store was updated outside Update, for
// example by the auto-refresh poller.
type SyncedMsg struct{}
