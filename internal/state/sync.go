package state

import (
	"context"
	"errors"

	"github.com/plantbuddy/plantbuddy/internal/plants"
)

// ErrCommitSkipped is returned by MarkWatered when nothing was submitted:
// the selection is empty or another commit is still in flight.
var ErrCommitSkipped = errors.New("nothing selected or watering already in progress")

// Reload runs one full load cycle against backend and blocks until it is
// applied (or discarded as stale).
func (s *Store) Reload(ctx context.Context, backend plants.Backend) error {
	epoch := s.BeginLoad()
	items, err := backend.FetchToday(ctx)
	s.FinishLoad(epoch, items, err)
	return err
}

// MarkWatered submits the whole selection in one request. On success the
// selection is cleared and the list reloaded; the reload outcome is recorded
// in the store rather than returned. On failure the selection is kept so the
// user can retry.
func (s *Store) MarkWatered(ctx context.Context, backend plants.Backend) (plants.WaterResult, error) {
	ids, ok := s.BeginCommit()
	if !ok {
		return plants.WaterResult{}, ErrCommitSkipped
	}
	res, err := backend.MarkWatered(ctx, ids)
	if !s.FinishCommit(res, err) {
		return res, CommitError(res, err)
	}
	_ = s.Reload(ctx, backend)
	return res, nil
}
