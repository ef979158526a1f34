package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Position  string         `db:"position"`
	Paid      int16          `db:"paid"`
	Number    sql.NullInt32  `db:"number"`
	TeamID    sql.NullInt64  `db:"team_id"`
	TeamName  sql.NullString `db:"team_name"`
	CreatedAt time.Time      `db:"created_at"`
}

type playerInsertModel struct {
	Name     string        `db:"name"`
	Position string        `db:"position"`
	Paid     int16         `db:"paid"`
	Number   sql.NullInt32 `db:"number"`
	TeamID   sql.NullInt64 `db:"team_id"`
}

func playerInsertFromDomain(p player.Player) playerInsertModel {
	return playerInsertModel{
		Name:     p.Name,
		Position: string(p.Position),
		Paid:     boolToSmallint(p.Paid),
		Number:   nullInt32(p.Number),
		TeamID:   nullInt64(p.TeamID),
	}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		Name:      row.Name,
		Position:  player.Position(row.Position),
		Paid:      row.Paid != 0,
		Number:    intPtr(row.Number),
		TeamID:    int64Ptr(row.TeamID),
		TeamName:  row.TeamName.String,
		CreatedAt: row.CreatedAt.UTC(),
	}
}
