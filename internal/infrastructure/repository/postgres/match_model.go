package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
)

type matchTableModel struct {
	ID          int64          `db:"id"`
	TeamAID     int64          `db:"team_a_id"`
	TeamBID     int64          `db:"team_b_id"`
	TeamAName   sql.NullString `db:"team_a_name"`
	TeamBName   sql.NullString `db:"team_b_name"`
	Status      string         `db:"status"`
	Stage       sql.NullString `db:"stage"`
	ScheduledAt sql.NullTime   `db:"scheduled_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

type matchInsertModel struct {
	TeamAID     int64          `db:"team_a_id"`
	TeamBID     int64          `db:"team_b_id"`
	Status      string         `db:"status"`
	Stage       sql.NullString `db:"stage"`
	ScheduledAt sql.NullTime   `db:"scheduled_at"`
}

func matchInsertFromDomain(m match.Match) matchInsertModel {
	var stage sql.NullString
	if m.Stage != nil {
		stage = sql.NullString{String: string(*m.Stage), Valid: true}
	}
	return matchInsertModel{
		TeamAID:     m.TeamAID,
		TeamBID:     m.TeamBID,
		Status:      string(m.Status),
		Stage:       stage,
		ScheduledAt: nullTime(m.ScheduledAt),
	}
}

func matchFromRow(row matchTableModel) match.Match {
	var stage *match.Stage
	if row.Stage.Valid {
		s := match.Stage(row.Stage.String)
		stage = &s
	}
	return match.Match{
		ID:          row.ID,
		TeamAID:     row.TeamAID,
		TeamBID:     row.TeamBID,
		TeamAName:   row.TeamAName.String,
		TeamBName:   row.TeamBName.String,
		Status:      match.Status(row.Status),
		Stage:       stage,
		ScheduledAt: timePtr(row.ScheduledAt),
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

type eventTableModel struct {
	ID         int64          `db:"id"`
	MatchID    int64          `db:"match_id"`
	TeamID     int64          `db:"team_id"`
	PlayerID   int64          `db:"player_id"`
	PlayerName sql.NullString `db:"player_name"`
	Type       string         `db:"type"`
	Minute     sql.NullInt32  `db:"minute"`
	CreatedAt  time.Time      `db:"created_at"`
}

type eventInsertModel struct {
	MatchID  int64         `db:"match_id"`
	TeamID   int64         `db:"team_id"`
	PlayerID int64         `db:"player_id"`
	Type     string        `db:"type"`
	Minute   sql.NullInt32 `db:"minute"`
}

func eventFromRow(row eventTableModel) match.Event {
	return match.Event{
		ID:         row.ID,
		MatchID:    row.MatchID,
		TeamID:     row.TeamID,
		PlayerID:   row.PlayerID,
		PlayerName: row.PlayerName.String,
		Type:       match.EventType(row.Type),
		Minute:     intPtr(row.Minute),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
