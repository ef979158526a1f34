package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeam(ctx context.Context, teamID int64) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").
		From("lineups").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup team=%d: %w", teamID, err)
	}
	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, l lineup.Lineup) (lineup.Lineup, error) {
	query, args, err := qb.InsertModel("lineups", lineupInsertFromDomain(l), `ON CONFLICT (team_id)
DO UPDATE SET
    goleiro = EXCLUDED.goleiro,
    ala_direito = EXCLUDED.ala_direito,
    ala_esquerdo = EXCLUDED.ala_esquerdo,
    frente = EXCLUDED.frente,
    zag = EXCLUDED.zag,
    meio = EXCLUDED.meio,
    reserva1 = EXCLUDED.reserva1,
    reserva2 = EXCLUDED.reserva2,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("build lineup upsert query: %w", err)
	}

	var updatedAt time.Time
	if err := r.db.GetContext(ctx, &updatedAt, query, args...); err != nil {
		return lineup.Lineup{}, fmt.Errorf("upsert lineup team=%d: %w", l.TeamID, err)
	}

	out := l.Clone()
	out.UpdatedAt = updatedAt.UTC()
	return out, nil
}
