package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/prefs"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

func intp(v int) *int { return &v }

func testItems() []plants.Item {
	return []plants.Item{
		{ID: 1, Name: "Monstera", Status: plants.StatusDue, DueInDays: intp(0), NormDays: intp(7), DaysSinceLastWatering: intp(7)},
		{ID: 2, Name: "Cactus", Status: plants.StatusOverdue, DueInDays: intp(-2), NormDays: intp(14), DaysSinceLastWatering: intp(16)},
		{ID: 3, Name: "Fern", Status: plants.StatusOK, DueInDays: intp(3), NormDays: intp(4), DaysSinceLastWatering: intp(1)},
	}
}

type fetchResult struct {
	items []plants.Item
	err   error
}

// fakeBackend serves queued fetch results, then repeats the last one.
type fakeBackend struct {
	mu       sync.Mutex
	fetches  []fetchResult
	nFetch   int
	waterRes plants.WaterResult
	waterErr error
	waterIDs [][]int64
}

func (f *fakeBackend) FetchToday(context.Context) ([]plants.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := min(f.nFetch, len(f.fetches)-1)
	f.nFetch++
	if idx < 0 {
		return nil, nil
	}
	return f.fetches[idx].items, f.fetches[idx].err
}

func (f *fakeBackend) MarkWatered(_ context.Context, ids []int64) (plants.WaterResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waterIDs = append(f.waterIDs, ids)
	return f.waterRes, f.waterErr
}

func (f *fakeBackend) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nFetch
}

func newTestModel(backend *fakeBackend) Model {
	m := New(Options{Backend: backend, Store: state.NewStore(), PrefsPath: "-"})
	m2, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m2.(Model)
}

// execCmd runs a tea.Cmd and feeds resulting messages back into the model.
// Timer commands (spinner frames, notice expiry) do not return within the
// deadline and are dropped.
func execCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return
	}
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			execCmd(t, m, sub)
		}
		return
	}
	m2, next := m.Update(msg)
	*m = m2.(Model)
	execCmd(t, m, next)
}

func press(t *testing.T, m *Model, k string) tea.Cmd {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m2, cmd := m.Update(msg)
	*m = m2.(Model)
	return cmd
}

func loadedModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	m := newTestModel(backend)
	execCmd(t, &m, m.Init())
	if got := m.store.Snapshot().Load; got != state.Ready {
		t.Fatalf("Load = %v after init, want ready", got)
	}
	return m
}

func TestView_SkeletonBeforeFirstLoad(t *testing.T) {
	m := newTestModel(&fakeBackend{fetches: []fetchResult{{items: testItems()}}})
	m.store.BeginLoad()

	view := m.View()
	if strings.Contains(view, "Monstera") {
		t.Fatalf("view shows plants before load:\n%s", view)
	}
	if !strings.Contains(view, "Syncing") {
		t.Fatalf("view missing loading indicator:\n%s", view)
	}
}

func TestInit_LoadsPlants(t *testing.T) {
	m := loadedModel(t, &fakeBackend{fetches: []fetchResult{{items: testItems()}}})

	view := m.View()
	for _, want := range []string{"Monstera", "Cactus", "Fern", "due today", "2d overdue", "in 3d"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFirstLoadFailureShowsRetryHint(t *testing.T) {
	backend := &fakeBackend{fetches: []fetchResult{{err: &plants.RequestError{StatusCode: 503, Message: "HTTP 503"}}}}
	m := newTestModel(backend)
	execCmd(t, &m, m.Init())

	view := m.View()
	if !strings.Contains(view, "HTTP 503") || !strings.Contains(view, "Press r to retry") {
		t.Fatalf("view = \n%s\nwant error banner and retry hint", view)
	}
}

func TestReloadFailureKeepsLastList(t *testing.T) {
	backend := &fakeBackend{fetches: []fetchResult{
		{items: testItems()},
		{err: &plants.RequestError{Message: "Request timed out"}},
	}}
	m := loadedModel(t, backend)

	execCmd(t, &m, press(t, &m, "r"))

	view := m.View()
	if !strings.Contains(view, "Monstera") {
		t.Fatalf("last list dropped after failed reload:\n%s", view)
	}
	if !strings.Contains(view, "Request timed out") || !strings.Contains(view, "showing last loaded list") {
		t.Fatalf("banner missing:\n%s", view)
	}
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	backend := &fakeBackend{fetches: []fetchResult{
		{items: testItems()},
		{items: []plants.Item{{ID: 9, Name: "Old", Status: plants.StatusOK}}},
		{items: []plants.Item{{ID: 10, Name: "New", Status: plants.StatusOK}}},
	}}
	m := loadedModel(t, backend)

	first := press(t, &m, "r")
	second := press(t, &m, "r")
	oldMsg := first()
	newMsg := second()

	m2, _ := m.Update(newMsg)
	m = m2.(Model)
	m2, _ = m.Update(oldMsg)
	m = m2.(Model)

	items := m.store.Snapshot().Items
	if len(items) != 1 || items[0].Name != "New" {
		t.Fatalf("items = %+v, want only the newest response", items)
	}
}

func TestWaterSelectionSuccess(t *testing.T) {
	backend := &fakeBackend{
		fetches:  []fetchResult{{items: testItems()}},
		waterRes: plants.WaterResult{OK: true, Updated: 1},
	}
	m := loadedModel(t, backend)

	press(t, &m, "space")
	if !m.store.Snapshot().Selected.Has(1) {
		t.Fatalf("space did not select the cursor row")
	}

	cmd := press(t, &m, "w")
	if cmd == nil {
		t.Fatalf("w returned no command")
	}
	if again := press(t, &m, "w"); again != nil {
		t.Fatalf("second w while committing returned a command")
	}
	if !strings.Contains(m.View(), "Watering") {
		t.Fatalf("view missing commit indicator:\n%s", m.View())
	}

	fetchesBefore := backend.fetchCount()
	execCmd(t, &m, cmd)

	if len(backend.waterIDs) != 1 || len(backend.waterIDs[0]) != 1 || backend.waterIDs[0][0] != 1 {
		t.Fatalf("water requests = %v, want one request for [1]", backend.waterIDs)
	}
	snap := m.store.Snapshot()
	if snap.Selected.Len() != 0 || snap.Committing {
		t.Fatalf("after success selected=%v committing=%v", snap.Selected.IDs(), snap.Committing)
	}
	if backend.fetchCount() != fetchesBefore+1 {
		t.Fatalf("fetches = %d, want a reload after commit", backend.fetchCount())
	}
	if !strings.Contains(m.View(), "Watered 1 plant") {
		t.Fatalf("view missing notice:\n%s", m.View())
	}
}

func TestWaterSelectionFailureKeepsSelection(t *testing.T) {
	backend := &fakeBackend{
		fetches:  []fetchResult{{items: testItems()}},
		waterErr: &plants.RequestError{StatusCode: 500, Message: "HTTP 500"},
	}
	m := loadedModel(t, backend)

	press(t, &m, "a")
	fetchesBefore := backend.fetchCount()
	execCmd(t, &m, press(t, &m, "enter"))

	snap := m.store.Snapshot()
	if got := snap.Selected.IDs(); len(got) != 3 {
		t.Fatalf("selection = %v, want all three kept", got)
	}
	if snap.Err != "HTTP 500" {
		t.Fatalf("Err = %q, want HTTP 500", snap.Err)
	}
	if backend.fetchCount() != fetchesBefore {
		t.Fatalf("reload ran after failed commit")
	}
	if !strings.Contains(m.View(), "HTTP 500") {
		t.Fatalf("view missing error:\n%s", m.View())
	}
}

func TestWaterWithEmptySelectionDoesNothing(t *testing.T) {
	backend := &fakeBackend{fetches: []fetchResult{{items: testItems()}}}
	m := loadedModel(t, backend)

	if cmd := press(t, &m, "w"); cmd != nil {
		t.Fatalf("w with empty selection returned a command")
	}
	if len(backend.waterIDs) != 0 {
		t.Fatalf("water request sent with empty selection")
	}
}

func TestFilterCycleClampsCursorAndKeepsSelection(t *testing.T) {
	m := loadedModel(t, &fakeBackend{fetches: []fetchResult{{items: testItems()}}})

	press(t, &m, "G")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d after G, want 2", m.cursor)
	}
	press(t, &m, "space") // selects Fern (ok)
	press(t, &m, "f")     // due only

	if m.cursor != 0 {
		t.Fatalf("cursor = %d after filter, want clamped to 0", m.cursor)
	}
	snap := m.store.Snapshot()
	if snap.Filter != state.FilterDue || !snap.Selected.Has(3) {
		t.Fatalf("filter=%v selected=%v", snap.Filter, snap.Selected.IDs())
	}
	view := m.View()
	if strings.Contains(view, "Fern") || !strings.Contains(view, "1 hidden") {
		t.Fatalf("view under due filter:\n%s", view)
	}
}

func TestClearSelection(t *testing.T) {
	m := loadedModel(t, &fakeBackend{fetches: []fetchResult{{items: testItems()}}})
	press(t, &m, "a")
	press(t, &m, "esc")
	if n := m.store.Snapshot().Selected.Len(); n != 0 {
		t.Fatalf("selection has %d ids after esc", n)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := loadedModel(t, &fakeBackend{fetches: []fetchResult{{items: testItems()}}})

	press(t, &m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help not shown")
	}
	press(t, &m, "a")
	if m.showHelp {
		t.Fatalf("help still open")
	}
	if m.store.Snapshot().Selected.Len() != 0 {
		t.Fatalf("key that closed help also acted")
	}
}

func TestStaleNoticeClearIgnored(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.notice, m.noticeID = "Watered 2 plants", 2

	m2, _ := m.Update(noticeClearMsg{id: 1})
	m = m2.(Model)
	if m.notice == "" {
		t.Fatalf("stale clear removed the current notice")
	}
	m2, _ = m.Update(noticeClearMsg{id: 2})
	m = m2.(Model)
	if m.notice != "" {
		t.Fatalf("notice = %q, want cleared", m.notice)
	}
}

func TestCycleThemeChangesName(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	press(t, &m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
}

func TestPrefsSaveThemeButNotFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Backend: &fakeBackend{}, Store: state.NewStore(), PrefsPath: path})

	press(t, &m, "f")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("filter change wrote prefs (stat err = %v)", err)
	}

	press(t, &m, "T")
	if got := prefs.Load(path); got.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got.Theme)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "filter") {
		t.Fatalf("prefs file = %q, want no filter", data)
	}
}

func TestCommandBarUsesKeyMapLabels(t *testing.T) {
	m := loadedModel(t, &fakeBackend{fetches: []fetchResult{{items: testItems()}}})
	m.keys.Water = key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "Mark watered"))

	if bar := m.renderCommandBar(m.store.Snapshot()); strings.Contains(bar, "Water") {
		t.Fatalf("command bar offers watering with nothing selected: %q", bar)
	}
	press(t, &m, "space")
	bar := m.renderCommandBar(m.store.Snapshot())
	if !strings.Contains(bar, "z") || !strings.Contains(bar, "Water 1") {
		t.Fatalf("command bar = %q, want rebound z key with Water 1", bar)
	}
}
