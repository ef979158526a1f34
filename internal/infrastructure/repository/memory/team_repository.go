package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/club-dashboard/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, s.teamView(t))
	}
	slices.SortFunc(out, func(a, b team.Team) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return s.teamView(t), true, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []int64) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if t, ok := s.teams[teamID]; ok {
			out = append(out, s.teamView(t))
		}
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.teamByName(t.Name); taken {
		return team.Team{}, team.ErrDuplicateName
	}
	t.ID = s.teamSeq.Next()
	t.CreatedAt = s.stamp(t.CreatedAt)
	s.teams[t.ID] = s.teamView(t)
	return s.teams[t.ID], nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) (team.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.teams[t.ID]
	if !ok {
		return team.Team{}, fmt.Errorf("team %d not found", t.ID)
	}
	if other, taken := s.teamByName(t.Name); taken && other.ID != t.ID {
		return team.Team{}, team.ErrDuplicateName
	}
	t.CreatedAt = current.CreatedAt
	s.teams[t.ID] = t
	return s.teamView(t), nil
}

// Delete keeps the players but clears their team. The team lineup and the
// matches it played are removed with it.
func (r *TeamRepository) Delete(_ context.Context, teamID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[teamID]; !ok {
		return false, nil
	}
	for playerID, p := range s.players {
		if p.OnTeam(teamID) {
			p.TeamID = nil
			s.players[playerID] = p
		}
	}
	for matchID, m := range s.matches {
		if m.HasTeam(teamID) {
			s.deleteMatch(matchID)
		}
	}
	delete(s.lineups, teamID)
	delete(s.teams, teamID)
	return true, nil
}
