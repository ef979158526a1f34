package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
)

type LineupRepository struct {
	store *Store
}

func (r *LineupRepository) GetByTeam(_ context.Context, teamID int64) (lineup.Lineup, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lineups[teamID]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return l.Clone(), true, nil
}

func (r *LineupRepository) Upsert(_ context.Context, l lineup.Lineup) (lineup.Lineup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[l.TeamID]; !ok {
		return lineup.Lineup{}, fmt.Errorf("team %d does not exist", l.TeamID)
	}
	l.UpdatedAt = s.stamp(l.UpdatedAt)
	s.lineups[l.TeamID] = l.Clone()
	return l.Clone(), nil
}
