package state

import (
	"slices"

	"github.com/plantbuddy/plantbuddy/internal/plants"
)

// Selection is a set of plant ids chosen by the user. It is independent of
// the active filter and is not checked against the current snapshot; the
// server decides which ids are still valid. The zero value is an empty set.
type Selection struct {
	ids map[int64]struct{}
}

// NewSelection returns a set holding ids.
func NewSelection(ids ...int64) Selection {
	var s Selection
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id int64) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	s.add(id)
}

// AddAll unions the ids of items into the set. Existing members are kept.
func (s *Selection) AddAll(items []plants.Item) {
	for _, item := range items {
		s.add(item.ID)
	}
}

// Clear empties the set.
func (s *Selection) Clear() {
	clear(s.ids)
}

// Has reports membership.
func (s Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of members.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the members sorted ascending.
func (s Selection) IDs() []int64 {
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// CountIn returns how many of items are selected.
func (s Selection) CountIn(items []plants.Item) int {
	n := 0
	for _, item := range items {
		if s.Has(item.ID) {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	if len(s.ids) == 0 {
		return Selection{}
	}
	dup := make(map[int64]struct{}, len(s.ids))
	for id := range s.ids {
		dup[id] = struct{}{}
	}
	return Selection{ids: dup}
}

func (s *Selection) add(id int64) {
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	s.ids[id] = struct{}{}
}
