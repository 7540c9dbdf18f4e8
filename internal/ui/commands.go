package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// reloadCmd starts a load cycle: the store moves to loading now, the fetch
// runs off the update loop.
func (m Model) reloadCmd() tea.Cmd {
	epoch := m.store.BeginLoad()
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		items, err := backend.FetchToday(ctx)
		return loadedMsg{epoch: epoch, items: items, err: err}
	}
}

// commitCmd claims the commit slot and submits the selection. It returns nil
// when the store refuses, so repeated presses cannot issue a second request.
func (m Model) commitCmd() tea.Cmd {
	ids, ok := m.store.BeginCommit()
	if !ok {
		return nil
	}
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		res, err := backend.MarkWatered(ctx, ids)
		return committedMsg{ids: ids, res: res, err: err}
	}
}

func clearNoticeCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return noticeClearMsg{id: id}
	})
}
