package logging

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var levelPattern = regexp.MustCompile(`\blevel=(DEBUG|INFO|WARN|ERROR)\b`)

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

// Colorize highlights the level of a slog text line for terminal output.
// Lines without a recognised level are returned unchanged.
func Colorize(line string) string {
	return levelPattern.ReplaceAllStringFunc(line, func(match string) string {
		level := match[len("level="):]
		return "level=" + levelStyles[level].Render(level)
	})
}
