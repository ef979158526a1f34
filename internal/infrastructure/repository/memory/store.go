package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/platform/id"
)

// Store holds every aggregate behind one lock so multi-row operations such as
// applying a draw or toggling a STAR are atomic. Repositories are views on it.
type Store struct {
	mu sync.RWMutex

	players map[int64]player.Player
	teams   map[int64]team.Team
	lineups map[int64]lineup.Lineup
	matches map[int64]match.Match
	events  map[int64]match.Event
	clocks  map[int64]clock.State

	playerSeq id.Sequence
	teamSeq   id.Sequence
	matchSeq  id.Sequence
	eventSeq  id.Sequence

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		players: make(map[int64]player.Player),
		teams:   make(map[int64]team.Team),
		lineups: make(map[int64]lineup.Lineup),
		matches: make(map[int64]match.Match),
		events:  make(map[int64]match.Event),
		clocks:  make(map[int64]clock.State),
		now:     time.Now,
	}
}

func (s *Store) Players() *PlayerRepository { return &PlayerRepository{store: s} }
func (s *Store) Teams() *TeamRepository     { return &TeamRepository{store: s} }
func (s *Store) Lineups() *LineupRepository { return &LineupRepository{store: s} }
func (s *Store) Matches() *MatchRepository  { return &MatchRepository{store: s} }
func (s *Store) Events() *EventRepository   { return &EventRepository{store: s} }
func (s *Store) Draws() *DrawRepository     { return &DrawRepository{store: s} }
func (s *Store) Clocks() *ClockRepository   { return &ClockRepository{store: s} }

// The helpers below expect s.mu to be held by the caller.

func (s *Store) playerView(p player.Player) player.Player {
	p.Number = clonePtr(p.Number)
	p.TeamID = clonePtr(p.TeamID)
	p.TeamName = ""
	if p.TeamID != nil {
		if t, ok := s.teams[*p.TeamID]; ok {
			p.TeamName = t.Name
		}
	}
	return p
}

func (s *Store) teamView(t team.Team) team.Team {
	t.Color = clonePtr(t.Color)
	t.LineCount = clonePtr(t.LineCount)
	t.Formation = clonePtr(t.Formation)
	t.ReservesCount = clonePtr(t.ReservesCount)
	t.PlayerCount = 0
	for _, p := range s.players {
		if p.OnTeam(t.ID) {
			t.PlayerCount++
		}
	}
	return t
}

func (s *Store) matchView(m match.Match) match.Match {
	m.Stage = clonePtr(m.Stage)
	m.ScheduledAt = clonePtr(m.ScheduledAt)
	m.TeamAName = s.teams[m.TeamAID].Name
	m.TeamBName = s.teams[m.TeamBID].Name
	return m
}

func (s *Store) eventView(e match.Event) match.Event {
	e.Minute = clonePtr(e.Minute)
	e.PlayerName = s.players[e.PlayerID].Name
	return e
}

func (s *Store) teamByName(name string) (team.Team, bool) {
	for _, t := range s.teams {
		if t.Name == name {
			return t, true
		}
	}
	return team.Team{}, false
}

func (s *Store) matchEvents(matchID int64) []match.Event {
	out := make([]match.Event, 0)
	for _, e := range s.events {
		if e.MatchID == matchID {
			out = append(out, s.eventView(e))
		}
	}
	sortEvents(out)
	return out
}

func sortEvents(events []match.Event) {
	slices.SortFunc(events, func(a, b match.Event) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now().UTC()
	}
	return t
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
