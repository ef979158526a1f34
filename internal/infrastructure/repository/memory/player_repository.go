package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

// List orders a team roster by name and the full club by newest first.
func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		if filter.PaidOnly && !p.Paid {
			continue
		}
		if filter.TeamID != nil && !p.OnTeam(*filter.TeamID) {
			continue
		}
		out = append(out, s.playerView(p))
	}

	if filter.TeamID != nil {
		slices.SortFunc(out, func(a, b player.Player) int {
			if c := cmp.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		return out, nil
	}
	slices.SortFunc(out, func(a, b player.Player) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return s.playerView(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if p, ok := s.players[playerID]; ok {
			out = append(out, s.playerView(p))
		}
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTeamRef(p.TeamID); err != nil {
		return player.Player{}, err
	}
	p.ID = s.playerSeq.Next()
	p.CreatedAt = s.stamp(p.CreatedAt)
	p.Number = clonePtr(p.Number)
	p.TeamID = clonePtr(p.TeamID)
	s.players[p.ID] = p
	return s.playerView(p), nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (player.Player, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.players[p.ID]
	if !ok {
		return player.Player{}, fmt.Errorf("player %d not found", p.ID)
	}
	if err := s.checkTeamRef(p.TeamID); err != nil {
		return player.Player{}, err
	}
	p.CreatedAt = current.CreatedAt
	p.Number = clonePtr(p.Number)
	p.TeamID = clonePtr(p.TeamID)
	s.players[p.ID] = p
	return s.playerView(p), nil
}

// Delete also removes the player's match events.
func (r *PlayerRepository) Delete(_ context.Context, playerID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[playerID]; !ok {
		return false, nil
	}
	delete(s.players, playerID)
	for eventID, e := range s.events {
		if e.PlayerID == playerID {
			delete(s.events, eventID)
		}
	}
	return true, nil
}

func (s *Store) checkTeamRef(teamID *int64) error {
	if teamID == nil {
		return nil
	}
	if _, ok := s.teams[*teamID]; !ok {
		return fmt.Errorf("team %d does not exist", *teamID)
	}
	return nil
}
