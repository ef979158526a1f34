package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
)

type DrawRepository struct {
	store *Store
}

// Apply validates every assignment before touching any row, then creates the
// missing teams and moves the players while holding the store lock.
func (r *DrawRepository) Apply(_ context.Context, assignments []draw.Assignment) ([]team.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range assignments {
		if strings.TrimSpace(a.TeamName) == "" {
			return nil, fmt.Errorf("draw team name is required")
		}
		for _, playerID := range a.PlayerIDs {
			if _, ok := s.players[playerID]; !ok {
				return nil, fmt.Errorf("player %d does not exist", playerID)
			}
		}
	}

	out := make([]team.Team, 0, len(assignments))
	for _, a := range assignments {
		t, ok := s.teamByName(a.TeamName)
		if !ok {
			t = team.Team{ID: s.teamSeq.Next(), Name: a.TeamName, CreatedAt: s.now().UTC()}
			s.teams[t.ID] = t
		}
		for _, playerID := range a.PlayerIDs {
			p := s.players[playerID]
			teamID := t.ID
			p.TeamID = &teamID
			s.players[playerID] = p
		}
		out = append(out, t)
	}

	for i := range out {
		out[i] = s.teamView(out[i])
	}
	return out, nil
}
