package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/team"
)

type teamTableModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Color         sql.NullString `db:"color"`
	LineCount     sql.NullInt32  `db:"line_count"`
	Formation     sql.NullString `db:"formation"`
	ReservesCount sql.NullInt32  `db:"reserves_count"`
	PlayerCount   int            `db:"player_count"`
	CreatedAt     time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	Name          string         `db:"name"`
	Color         sql.NullString `db:"color"`
	LineCount     sql.NullInt32  `db:"line_count"`
	Formation     sql.NullString `db:"formation"`
	ReservesCount sql.NullInt32  `db:"reserves_count"`
}

func teamInsertFromDomain(t team.Team) teamInsertModel {
	return teamInsertModel{
		Name:          t.Name,
		Color:         nullString(t.Color),
		LineCount:     nullInt32(t.LineCount),
		Formation:     nullString(t.Formation),
		ReservesCount: nullInt32(t.ReservesCount),
	}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:            row.ID,
		Name:          row.Name,
		Color:         stringPtr(row.Color),
		LineCount:     intPtr(row.LineCount),
		Formation:     stringPtr(row.Formation),
		ReservesCount: intPtr(row.ReservesCount),
		PlayerCount:   row.PlayerCount,
		CreatedAt:     row.CreatedAt.UTC(),
	}
}
