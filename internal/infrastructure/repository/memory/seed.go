package memory

import (
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
)

var seedCreatedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	blue, red := "#1d4ed8", "#b91c1c"
	return []team.Team{
		{ID: 1, Name: "Team 1", Color: &blue, CreatedAt: seedCreatedAt},
		{ID: 2, Name: "Team 2", Color: &red, CreatedAt: seedCreatedAt},
	}
}

// SeedPlayers returns a pool with two players per position, two of them unpaid.
func SeedPlayers() []player.Player {
	type row struct {
		name string
		pos  player.Position
		paid bool
	}
	rows := []row{
		{"Caio Lopes", player.PositionGoalkeeper, true},
		{"Renato Dias", player.PositionGoalkeeper, true},
		{"Bruno Sampaio", player.PositionDefender, true},
		{"Thiago Mello", player.PositionDefender, true},
		{"Lucas Prado", player.PositionLeftWing, true},
		{"Diego Faria", player.PositionLeftWing, false},
		{"Igor Nunes", player.PositionRightWing, true},
		{"Mateus Rocha", player.PositionRightWing, true},
		{"Andre Vieira", player.PositionMidfielder, true},
		{"Felipe Costa", player.PositionMidfielder, true},
		{"Gabriel Souza", player.PositionForward, true},
		{"Rafael Teles", player.PositionForward, false},
	}

	out := make([]player.Player, 0, len(rows))
	for i, r := range rows {
		number := i + 1
		out = append(out, player.Player{
			ID:        int64(i + 1),
			Name:      r.name,
			Position:  r.pos,
			Paid:      r.paid,
			Number:    &number,
			CreatedAt: seedCreatedAt.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

// Load inserts rows with fixed ids and moves the id sequences past them.
func (s *Store) Load(teams []team.Team, players []player.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range teams {
		s.teams[t.ID] = t
		s.teamSeq.Observe(t.ID)
	}
	for _, p := range players {
		s.players[p.ID] = p
		s.playerSeq.Observe(p.ID)
	}
}
