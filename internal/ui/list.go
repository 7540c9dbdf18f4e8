package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/plantbuddy/plantbuddy/internal/plants"
	"github.com/plantbuddy/plantbuddy/internal/state"
)

const (
	badgeWidth = 9
	dueWidth   = 12
	lastWidth  = 11
	normWidth  = 10
)

// renderList renders the plant rows, the skeleton before the first load, or
// an empty-state hint.
func (m Model) renderList(snap state.Snapshot) string {
	styles := m.theme.Styles()
	rows := max(m.height-chromeRows, 1)

	if !snap.HasLoaded {
		if snap.Load == state.Failed {
			return styles.MutedText.Padding(1, 2).Render("Could not load plants. Press r to retry.")
		}
		return m.renderSkeleton(styles, min(rows, SkeletonRows))
	}

	visible := snap.Visible()
	if len(visible) == 0 {
		hint := "Nothing to water today."
		if len(snap.Items) > 0 {
			hint = fmt.Sprintf("No plants match the %s filter. Press f to change it.", snap.Filter)
		}
		return styles.MutedText.Padding(1, 2).Render(hint)
	}

	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(visible))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(styles, visible[i], snap.Selected.Has(visible[i].ID), i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(styles Styles, item plants.Item, selected, focused bool) string {
	wide := m.width >= LayoutWideWidth

	check := "[ ]"
	if selected {
		check = "[x]"
	}
	marker := " "
	if focused {
		marker = "›"
	}

	// marker, check and gaps around the name, badge and due columns
	fixed := 6 + 2 + badgeWidth + 1 + dueWidth
	if wide {
		fixed += 2 + lastWidth + 2 + normWidth
	}
	nameWidth := max(m.width-fixed-1, 8)
	name := item.Name
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Plant #%d", item.ID)
	}
	name = ansi.Truncate(name, nameWidth, "…")

	cols := []string{
		marker + " " + check + " " + pad(name, nameWidth),
		pad(statusLabel(item.Status), badgeWidth-2),
		pad(dueText(item), dueWidth),
	}
	if wide {
		cols = append(cols, pad(lastWateredText(item), lastWidth), pad(normText(item), normWidth))
	}

	if focused {
		return styles.Selected.Width(m.width).Render(strings.Join(cols, "  "))
	}

	checkStyle := styles.FaintText
	if selected {
		checkStyle = styles.AccentText
	}
	out := marker + " " + checkStyle.Render(check) + " " + styles.Text.Render(pad(name, nameWidth)) + "  " +
		styles.StatusStyle(item.Status).Width(badgeWidth).Render(statusLabel(item.Status)) + " " +
		styles.StatusText(item.Status).Render(pad(dueText(item), dueWidth))
	if wide {
		out += "  " + styles.MutedText.Render(pad(lastWateredText(item), lastWidth)) +
			"  " + styles.FaintText.Render(pad(normText(item), normWidth))
	}
	return out
}

func (m Model) renderSkeleton(styles Styles, rows int) string {
	nameWidth := max(min(m.width/3, 28), 8)
	lines := make([]string, rows)
	for i := range lines {
		w := nameWidth - (i%3)*4
		lines[i] = "  " + styles.Skeleton.Render("   ") + " " +
			styles.Skeleton.Render(strings.Repeat(" ", w)) + "  " +
			styles.Skeleton.Render(strings.Repeat(" ", badgeWidth))
	}
	return strings.Join(lines, "\n")
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
