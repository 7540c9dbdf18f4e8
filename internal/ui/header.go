package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

// renderHeader renders the status bar: counts per status, selection size and
// the sync indicator.
func (m Model) renderHeader(snap state.Snapshot) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("plantbuddy", styles.Logo)}

	switch {
	case snap.Committing:
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Watering...", styles.WarningText))
	case snap.Load == state.Loading:
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Syncing...", styles.MutedText))
	case snap.Load == state.Failed:
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	default:
		parts = append(parts, bg.Render("● SYNCED", styles.SuccessText))
	}

	if snap.HasLoaded {
		counts := snap.Counts()
		for _, st := range []plants.Status{plants.StatusOverdue, plants.StatusDue, plants.StatusOK} {
			label := statusLabel(st)
			if compact {
				label = label[:1]
			}
			parts = append(parts,
				bg.Render(label+":", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", counts[st]), m.countStyle(styles, st, counts[st])))
		}
	}

	if n := snap.Selected.Len(); n > 0 {
		sel := fmt.Sprintf("%d", n)
		if hidden := n - snap.SelectedVisible(); hidden > 0 {
			sel += fmt.Sprintf(" (%d hidden)", hidden)
		}
		parts = append(parts, bg.Render("Selected:", styles.MutedText)+bg.Space()+bg.Render(sel, styles.AccentText))
	}

	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.notice != "" {
		parts = append(parts, bg.Render("✓ "+m.notice, styles.SuccessText))
	}

	if m.endpoint != "" && m.width >= LayoutWideWidth {
		parts = append(parts, bg.Render(ansi.Truncate(m.endpoint, 40, "…"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) countStyle(styles Styles, st plants.Status, n int) lipgloss.Style {
	if n == 0 {
		return styles.MutedText
	}
	return styles.StatusText(st).Background(lipgloss.Color(m.theme.Surface))
}

// renderCommandBar renders the key hints. Key labels come from the key map;
// descriptions are shortened and follow the current state.
func (m Model) renderCommandBar(snap state.Snapshot) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	label := func(b key.Binding) string { return b.Help().Key }
	commands := []cmd{
		{label(m.keys.CycleFilter), snap.Filter.Label()},
		{label(m.keys.Toggle), "Select"},
		{label(m.keys.SelectAll), "All"},
		{label(m.keys.Clear), "Clear"},
	}
	if snap.CanCommit() {
		commands = append(commands, cmd{label(m.keys.Water), fmt.Sprintf("Water %d", snap.Selected.Len())})
	}
	commands = append(commands, cmd{label(m.keys.Refresh), "Reload"}, cmd{label(m.keys.Help), "More"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render(label(m.keys.CycleTheme), styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderBanner renders the error line. It is blank when there is no error so
// the list does not jump.
func (m Model) renderBanner(snap state.Snapshot) string {
	if snap.Err == "" {
		return ""
	}
	styles := m.theme.Styles()
	text := "! " + snap.Err
	if snap.HasLoaded && snap.Load == state.Failed {
		text += " (showing last loaded list)"
	}
	return styles.DangerText.Padding(0, 1).Render(ansi.Truncate(text, max(m.width-2, 1), "…"))
}

func statusLabel(st plants.Status) string {
	switch st {
	case plants.StatusOK:
		return "OK"
	case plants.StatusDue:
		return "Due"
	case plants.StatusOverdue:
		return "Overdue"
	default:
		return "Unknown"
	}
}
