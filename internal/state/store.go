package state

import (
	"errors"
	"sync"
	"time"

	"github.com/plantbuddy/plantbuddy/internal/plants"
)

// LoadState is the lifecycle of the plant list.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (l LoadState) String() string {
	switch l {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// ErrNotConfirmed is reported when the server answers a watering request
// successfully but with ok=false.
var ErrNotConfirmed = errors.New("server did not confirm watering")

// Snapshot is an immutable view of the store handed to readers.
type Snapshot struct {
	Items       []plants.Item
	HasLoaded   bool // at least one load succeeded
	Load        LoadState
	Err         string
	Filter      Filter
	Selected    Selection
	Committing  bool
	LastUpdated time.Time
}

// Visible returns the filtered items.
func (s Snapshot) Visible() []plants.Item {
	return Visible(s.Items, s.Filter)
}

// SelectedVisible returns how many visible items are selected.
func (s Snapshot) SelectedVisible() int {
	return s.Selected.CountIn(s.Visible())
}

// Counts tallies the snapshot per status.
func (s Snapshot) Counts() map[plants.Status]int {
	counts := make(map[plants.Status]int, 4)
	for _, item := range s.Items {
		counts[item.Status]++
	}
	return counts
}

// CanCommit reports whether a commit would start.
func (s Snapshot) CanCommit() bool {
	return s.Selected.Len() > 0 && !s.Committing
}

// Store is the single owner of the list, the selection, the filter, the load
// state and the commit flag. Its methods are the only write entry points;
// everything else reads Snapshot copies.
type Store struct {
	mu sync.Mutex

	items       []plants.Item
	hasLoaded   bool
	load        LoadState
	errMsg      string
	filter      Filter
	selected    Selection
	committing  bool
	epoch       uint64
	lastUpdated time.Time

	now func() time.Time
}

// NewStore returns a store in the initial (loading, idle) state.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// BeginLoad moves the store to loading, clears the error message and returns
// the epoch that the matching FinishLoad must present.
func (s *Store) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.load = Loading
	s.errMsg = ""
	return s.epoch
}

// FinishLoad applies a fetch result. Results from any epoch other than the
// latest are discarded and FinishLoad reports false. On failure the previous
// items are kept. Only BeginLoad clears the error message, so a commit failure
// recorded while the load was in flight survives its success.
func (s *Store) FinishLoad(epoch uint64, items []plants.Item, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return false
	}
	s.lastUpdated = s.clock()
	if err != nil {
		s.load = Failed
		s.errMsg = plants.Message(err)
		return true
	}
	s.items = cloneItems(items)
	s.hasLoaded = true
	s.load = Ready
	return true
}

// SetFilter changes the visible subset. The selection is untouched.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// CycleFilter advances to the next filter and returns it.
func (s *Store) CycleFilter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = s.filter.Next()
	return s.filter
}

// Toggle flips membership of id in the selection.
func (s *Store) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Toggle(id)
}

// SelectAllVisible adds every currently visible id to the selection.
func (s *Store) SelectAllVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.AddAll(Visible(s.items, s.filter))
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Clear()
}

// BeginCommit claims the commit slot. It reports false, changing nothing,
// when the selection is empty or a commit is already in flight. Otherwise it
// marks the commit in flight, clears the error message and returns the ids to
// submit.
func (s *Store) BeginCommit() ([]int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing || s.selected.Len() == 0 {
		return nil, false
	}
	s.committing = true
	s.errMsg = ""
	return s.selected.IDs(), true
}

// FinishCommit releases the commit slot and applies the outcome. On success
// the selection is cleared and FinishCommit reports true: the caller must
// reload. On failure the message is recorded and the selection kept.
func (s *Store) FinishCommit(res plants.WaterResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committing = false
	if cerr := CommitError(res, err); cerr != nil {
		s.errMsg = plants.Message(cerr)
		return false
	}
	s.selected.Clear()
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Items:       cloneItems(s.items),
		HasLoaded:   s.hasLoaded,
		Load:        s.load,
		Err:         s.errMsg,
		Filter:      s.filter,
		Selected:    s.selected.Clone(),
		Committing:  s.committing,
		LastUpdated: s.lastUpdated,
	}
}

// CommitError folds a watering response into a single error: the transport
// error when there is one, ErrNotConfirmed when the server replied ok=false.
func CommitError(res plants.WaterResult, err error) error {
	if err != nil {
		return err
	}
	if !res.OK {
		return ErrNotConfirmed
	}
	return nil
}

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func cloneItems(items []plants.Item) []plants.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]plants.Item, len(items))
	copy(dup, items)
	return dup
}
