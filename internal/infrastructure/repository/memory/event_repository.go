package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
)

type EventRepository struct {
	store *Store
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID int64) ([]match.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matchEvents(matchID), nil
}

func (r *EventRepository) ListByMatches(_ context.Context, matchIDs []int64) (map[int64][]match.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64][]match.Event, len(matchIDs))
	for _, matchID := range matchIDs {
		out[matchID] = s.matchEvents(matchID)
	}
	return out, nil
}

func (r *EventRepository) Append(_ context.Context, e match.Event) (match.Event, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertEvent(e)
}

func (r *EventRepository) Delete(_ context.Context, matchID, eventID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[eventID]
	if !ok || e.MatchID != matchID {
		return false, nil
	}
	delete(s.events, eventID)
	return true, nil
}

// ToggleStar runs under the store lock, so concurrent STARs for one match
// cannot both insert.
func (r *EventRepository) ToggleStar(_ context.Context, e match.Event) (match.Event, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	deleteIDs, insert := match.PlanStarToggle(s.matchEvents(e.MatchID), e.PlayerID)
	if insert {
		if err := s.checkEventRefs(e); err != nil {
			return match.Event{}, false, err
		}
	}
	for _, eventID := range deleteIDs {
		delete(s.events, eventID)
	}
	if !insert {
		return match.Event{}, true, nil
	}

	stored, err := s.insertEvent(e)
	return stored, false, err
}

func (s *Store) insertEvent(e match.Event) (match.Event, error) {
	if err := s.checkEventRefs(e); err != nil {
		return match.Event{}, err
	}
	e.ID = s.eventSeq.Next()
	e.CreatedAt = s.stamp(e.CreatedAt)
	e.Minute = clonePtr(e.Minute)
	s.events[e.ID] = e
	return s.eventView(e), nil
}

func (s *Store) checkEventRefs(e match.Event) error {
	if _, ok := s.matches[e.MatchID]; !ok {
		return fmt.Errorf("match %d does not exist", e.MatchID)
	}
	if _, ok := s.players[e.PlayerID]; !ok {
		return fmt.Errorf("player %d does not exist", e.PlayerID)
	}
	if _, ok := s.teams[e.TeamID]; !ok {
		return fmt.Errorf("team %d does not exist", e.TeamID)
	}
	return nil
}
