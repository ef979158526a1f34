package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]match.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, s.matchView(m))
	}
	slices.SortFunc(out, func(a, b match.Match) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return s.matchView(m), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	created, err := r.CreateMany(ctx, []match.Match{m})
	if err != nil {
		return match.Match{}, err
	}
	return created[0], nil
}

func (r *MatchRepository) CreateMany(_ context.Context, matches []match.Match) ([]match.Match, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range matches {
		if err := s.checkMatchTeams(m); err != nil {
			return nil, err
		}
	}

	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		m.ID = s.matchSeq.Next()
		m.CreatedAt = s.stamp(m.CreatedAt)
		if m.Status == "" {
			m.Status = match.StatusScheduled
		}
		s.matches[m.ID] = s.matchView(m)
		out = append(out, s.matches[m.ID])
	}
	return out, nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) (match.Match, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.matches[m.ID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %d not found", m.ID)
	}
	if err := s.checkMatchTeams(m); err != nil {
		return match.Match{}, err
	}
	m.CreatedAt = current.CreatedAt
	s.matches[m.ID] = s.matchView(m)
	return s.matches[m.ID], nil
}

func (s *Store) checkMatchTeams(m match.Match) error {
	for _, teamID := range []int64{m.TeamAID, m.TeamBID} {
		if _, ok := s.teams[teamID]; !ok {
			return fmt.Errorf("team %d does not exist", teamID)
		}
	}
	return nil
}

func (s *Store) deleteMatch(matchID int64) {
	for eventID, e := range s.events {
		if e.MatchID == matchID {
			delete(s.events, eventID)
		}
	}
	delete(s.clocks, matchID)
	delete(s.matches, matchID)
}
