package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

type DrawRepository struct {
	db *sqlx.DB
}

func NewDrawRepository(db *sqlx.DB) *DrawRepository {
	return &DrawRepository{db: db}
}

// Apply finds or creates every team by name and moves its players in one
// transaction. A missing player aborts the whole draw.
func (r *DrawRepository) Apply(ctx context.Context, assignments []draw.Assignment) ([]team.Team, error) {
	out := make([]team.Team, 0, len(assignments))
	err := withTx(ctx, r.db, "draw apply", func(tx *sqlx.Tx) error {
		for _, a := range assignments {
			name := normalizeTeamName(a.TeamName)
			if name == "" {
				return fmt.Errorf("draw team name is required")
			}

			teamID, err := findOrCreateTeam(ctx, tx, name)
			if err != nil {
				return err
			}
			if err := moveAll(ctx, tx, teamID, a.PlayerIDs); err != nil {
				return err
			}
		}

		for _, a := range assignments {
			query, args, err := teamBaseSelectBuilder().
				Where(qb.Eq("t.name", normalizeTeamName(a.TeamName))).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build get drawn team query: %w", err)
			}
			var row teamTableModel
			if err := tx.GetContext(ctx, &row, query, args...); err != nil {
				return fmt.Errorf("get drawn team name=%s: %w", a.TeamName, err)
			}
			out = append(out, teamFromRow(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findOrCreateTeam(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	query, args, err := qb.InsertInto("teams").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build find or create team query: %w", err)
	}

	var teamID int64
	if err := tx.GetContext(ctx, &teamID, query, args...); err != nil {
		return 0, fmt.Errorf("find or create team name=%s: %w", name, err)
	}
	return teamID, nil
}

func moveAll(ctx context.Context, tx *sqlx.Tx, teamID int64, playerIDs []int64) error {
	if len(playerIDs) == 0 {
		return nil
	}
	query, args, err := qb.Update("players").
		Set("team_id", teamID).
		Where(qb.In("id", int64Args(playerIDs))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build move players query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("move players to team=%d: %w", teamID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move players rows affected: %w", err)
	}
	if n != int64(len(playerIDs)) {
		return fmt.Errorf("move players to team=%d: %d of %d players exist", teamID, n, len(playerIDs))
	}
	return nil
}
