package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
)

// lineupTableModel keeps one nullable player column per slot.
type lineupTableModel struct {
	TeamID     int64         `db:"team_id"`
	Goalkeeper sql.NullInt64 `db:"goleiro"`
	RightWing  sql.NullInt64 `db:"ala_direito"`
	LeftWing   sql.NullInt64 `db:"ala_esquerdo"`
	Forward    sql.NullInt64 `db:"frente"`
	Defender   sql.NullInt64 `db:"zag"`
	Midfielder sql.NullInt64 `db:"meio"`
	Reserve1   sql.NullInt64 `db:"reserva1"`
	Reserve2   sql.NullInt64 `db:"reserva2"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type lineupInsertModel struct {
	TeamID     int64         `db:"team_id"`
	Goalkeeper sql.NullInt64 `db:"goleiro"`
	RightWing  sql.NullInt64 `db:"ala_direito"`
	LeftWing   sql.NullInt64 `db:"ala_esquerdo"`
	Forward    sql.NullInt64 `db:"frente"`
	Defender   sql.NullInt64 `db:"zag"`
	Midfielder sql.NullInt64 `db:"meio"`
	Reserve1   sql.NullInt64 `db:"reserva1"`
	Reserve2   sql.NullInt64 `db:"reserva2"`
}

func (m *lineupTableModel) slotColumns() map[lineup.Slot]*sql.NullInt64 {
	return map[lineup.Slot]*sql.NullInt64{
		lineup.SlotGoalkeeper: &m.Goalkeeper,
		lineup.SlotRightWing:  &m.RightWing,
		lineup.SlotLeftWing:   &m.LeftWing,
		lineup.SlotForward:    &m.Forward,
		lineup.SlotDefender:   &m.Defender,
		lineup.SlotMidfielder: &m.Midfielder,
		lineup.SlotReserve1:   &m.Reserve1,
		lineup.SlotReserve2:   &m.Reserve2,
	}
}

func lineupFromRow(row lineupTableModel) lineup.Lineup {
	out := lineup.New(row.TeamID)
	for slot, col := range row.slotColumns() {
		if col.Valid {
			out.Slots[slot] = col.Int64
		}
	}
	out.UpdatedAt = row.UpdatedAt.UTC()
	return out
}

func lineupInsertFromDomain(l lineup.Lineup) lineupInsertModel {
	slot := func(s lineup.Slot) sql.NullInt64 {
		playerID, ok := l.Slots[s]
		if !ok {
			return sql.NullInt64{}
		}
		return sql.NullInt64{Int64: playerID, Valid: true}
	}
	return lineupInsertModel{
		TeamID:     l.TeamID,
		Goalkeeper: slot(lineup.SlotGoalkeeper),
		RightWing:  slot(lineup.SlotRightWing),
		LeftWing:   slot(lineup.SlotLeftWing),
		Forward:    slot(lineup.SlotForward),
		Defender:   slot(lineup.SlotDefender),
		Midfielder: slot(lineup.SlotMidfielder),
		Reserve1:   slot(lineup.SlotReserve1),
		Reserve2:   slot(lineup.SlotReserve2),
	}
}
