package ui

import (
	"fmt"
	"time"

	"github.com/plantbuddy/plantbuddy/internal/plants"
)

// dueText describes when a plant needs water next.
func dueText(item plants.Item) string {
	if item.DueInDays == nil {
		return "-"
	}
	switch d := *item.DueInDays; {
	case d == 0:
		return "due today"
	case d > 0:
		return fmt.Sprintf("in %dd", d)
	default:
		return fmt.Sprintf("%dd overdue", -d)
	}
}

// lastWateredText describes how long ago a plant was watered.
func lastWateredText(item plants.Item) string {
	if item.DaysSinceLastWatering == nil {
		if item.LastWateredAt == nil {
			return "never"
		}
		return "-"
	}
	switch d := *item.DaysSinceLastWatering; d {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%dd ago", d)
	}
}

// normText renders the watering interval.
func normText(item plants.Item) string {
	if item.NormDays == nil || *item.NormDays <= 0 {
		return ""
	}
	return fmt.Sprintf("every %dd", *item.NormDays)
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	out := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}
