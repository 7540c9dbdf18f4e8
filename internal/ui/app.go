package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/prefs"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Backend   plants.Backend
	Store     *state.Store
	Logger    *slog.Logger
	ThemeName string
	PrefsPath string // empty uses prefs.DefaultPath; "-" disables saving
	Endpoint  string // shown in the header
}

// Model is the root application state for Bubble Tea. The plant list,
// selection and filter live in the store; Model only holds view state.
type Model struct {
	ctx       context.Context
	backend   plants.Backend
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	endpoint  string

	keys    keyMap
	theme   Theme
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	cursor   int
	showHelp bool

	notice   string
	noticeID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	theme := GetTheme(opts.ThemeName)
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:       ctx,
		backend:   opts.Backend,
		store:     store,
		logger:    logger,
		prefsPath: prefsPath,
		endpoint:  opts.Endpoint,
		keys:      DefaultKeyMap(),
		theme:     theme,
		spinner:   sp,
	}
}

// Init implements tea.Model. The first load starts immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reloadCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if !m.store.FinishLoad(msg.epoch, msg.items, msg.err) {
			m.logger.Debug("discarded stale load", "epoch", msg.epoch)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("load failed", "error", plants.Message(msg.err))
		} else {
			m.logger.Info("loaded plants", "count", len(msg.items))
		}
		m.clampCursor()
		return m, nil

	case committedMsg:
		if !m.store.FinishCommit(msg.res, msg.err) {
			m.logger.Warn("mark watered failed", "ids", msg.ids, "error", plants.Message(state.CommitError(msg.res, msg.err)))
			return m, nil
		}
		m.logger.Info("marked watered", "ids", msg.ids, "updated", msg.res.Updated)
		m.noticeID++
		m.notice = wateredNotice(msg.res.Updated)
		return m, tea.Batch(m.reloadCmd(), clearNoticeCmd(m.noticeID, NoticeTTL))

	case noticeClearMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case SyncedMsg:
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	snap := m.store.Snapshot()
	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar(snap))
	b.WriteString("\n")
	b.WriteString(m.renderBanner(snap))
	b.WriteString("\n")
	b.WriteString(m.renderList(snap))
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.savePrefs()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.visible())-1, 0)

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.cursorItem(); ok {
			m.store.Toggle(item.ID)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.store.SelectAllVisible()
	case key.Matches(msg, m.keys.Clear):
		m.store.ClearSelection()

	case key.Matches(msg, m.keys.CycleFilter):
		m.store.CycleFilter()
		m.clampCursor()

	case key.Matches(msg, m.keys.Water):
		return m, m.commitCmd()
	}

	return m, nil
}

func (m Model) visible() []plants.Item {
	return m.store.Snapshot().Visible()
}

func (m Model) cursorItem() (plants.Item, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return plants.Item{}, false
	}
	return visible[m.cursor], true
}

// clampCursor keeps the cursor on a visible row after the list or filter
// changed underneath it.
func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "-" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

func wateredNotice(updated int) string {
	if updated == 1 {
		return "Watered 1 plant"
	}
	return fmt.Sprintf("Watered %d plants", updated)
}

// NewProgram builds the Bubble Tea program for opts. Callers that feed the
// program from other goroutines use its Send method.
func NewProgram(opts Options) *tea.Program {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
}
