package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// List orders a team roster by name and the full club by newest first.
func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	builder := playerBaseSelectBuilder()
	if filter.PaidOnly {
		builder = builder.Where(qb.Eq("p.paid", boolToSmallint(true)))
	}
	if filter.TeamID != nil {
		builder = builder.Where(qb.Eq("p.team_id", *filter.TeamID)).OrderBy("p.name", "p.id")
	} else {
		builder = builder.OrderBy("p.created_at DESC", "p.id DESC")
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(qb.Eq("p.id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player id=%d: %w", playerID, err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	query, args, err := playerBaseSelectBuilder().
		Where(qb.In("p.id", int64Args(playerIDs))).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("players", playerInsertFromDomain(p), "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var playerID int64
	if err := r.db.GetContext(ctx, &playerID, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}
	return r.reload(ctx, playerID)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (player.Player, error) {
	row := playerInsertFromDomain(p)
	query, args, err := qb.Update("players").
		Set("name", row.Name).
		Set("position", row.Position).
		Set("paid", row.Paid).
		Set("number", row.Number).
		Set("team_id", row.TeamID).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player id=%d: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return player.Player{}, fmt.Errorf("player %d not found", p.ID)
	}
	return r.reload(ctx, p.ID)
}

// Delete cascades to the player's match events through the foreign key.
func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("id", playerID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player id=%d: %w", playerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player id=%d rows affected: %w", playerID, err)
	}
	return n > 0, nil
}

func (r *PlayerRepository) reload(ctx context.Context, playerID int64) (player.Player, error) {
	out, ok, err := r.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if !ok {
		return player.Player{}, fmt.Errorf("player %d vanished after write", playerID)
	}
	return out, nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"p.id",
		"p.name",
		"p.position",
		"p.paid",
		"p.number",
		"p.team_id",
		"t.name AS team_name",
		"p.created_at",
	).
		From("players p").
		LeftJoin("teams t", "t.id = p.team_id")
}
