package memory

import (
	"context"

	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
)

type ClockRepository struct {
	store *Store
}

func (r *ClockRepository) Get(_ context.Context, matchID int64) (clock.State, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.clocks[matchID]
	return state, ok, nil
}

func (r *ClockRepository) Save(_ context.Context, state clock.State) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clocks[state.MatchID] = state
	return nil
}

func (r *ClockRepository) Delete(_ context.Context, matchID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clocks, matchID)
	return nil
}
