package state

import (
	"fmt"
	"strings"

	"github.com/plantbuddy/plantbuddy/internal/plants"
)

// Filter selects which part of the snapshot is visible. It never affects
// server requests or the selection.
type Filter int

const (
	FilterAll Filter = iota
	FilterDue
	FilterOverdue
)

var filterNames = [...]string{"all", "due", "overdue"}

// String returns the lower-case name used by flags and config.
func (f Filter) String() string {
	if f < FilterAll || f > FilterOverdue {
		return fmt.Sprintf("filter(%d)", int(f))
	}
	return filterNames[f]
}

// Label returns the title-case name shown in the toolbar.
func (f Filter) Label() string {
	switch f {
	case FilterDue:
		return "Due"
	case FilterOverdue:
		return "Overdue"
	default:
		return "All"
	}
}

// Next cycles all → due → overdue → all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterDue
	case FilterDue:
		return FilterOverdue
	default:
		return FilterAll
	}
}

// ParseFilter reads a filter name, case-insensitively.
func ParseFilter(name string) (Filter, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return FilterAll, nil
	}
	for i, n := range filterNames {
		if n == trimmed {
			return Filter(i), nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, due or overdue)", name)
}

// Matches reports whether item passes the filter.
func (f Filter) Matches(item plants.Item) bool {
	switch f {
	case FilterDue:
		return item.Status == plants.StatusDue
	case FilterOverdue:
		return item.Status == plants.StatusOverdue
	default:
		return true
	}
}

// Visible returns the items passing filter, in their original order. The
// result is a fresh slice; items is never modified.
func Visible(items []plants.Item, filter Filter) []plants.Item {
	out := make([]plants.Item, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
