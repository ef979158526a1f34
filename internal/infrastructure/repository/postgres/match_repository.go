package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		OrderBy("m.created_at DESC", "m.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	return getMatch(ctx, r.db, matchID)
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	created, err := r.CreateMany(ctx, []match.Match{m})
	if err != nil {
		return match.Match{}, err
	}
	return created[0], nil
}

// CreateMany inserts every match in one transaction and returns them in input order.
func (r *MatchRepository) CreateMany(ctx context.Context, matches []match.Match) ([]match.Match, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	out := make([]match.Match, 0, len(matches))
	err := withTx(ctx, r.db, "match create", func(tx *sqlx.Tx) error {
		for _, m := range matches {
			query, args, err := qb.InsertModel("matches", matchInsertFromDomain(m), "RETURNING id")
			if err != nil {
				return fmt.Errorf("build insert match query: %w", err)
			}

			var matchID int64
			if err := tx.GetContext(ctx, &matchID, query, args...); err != nil {
				return fmt.Errorf("insert match teams=%d,%d: %w", m.TeamAID, m.TeamBID, err)
			}

			stored, ok, err := getMatch(ctx, tx, matchID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("match %d vanished after insert", matchID)
			}
			out = append(out, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) (match.Match, error) {
	row := matchInsertFromDomain(m)
	query, args, err := qb.Update("matches").
		Set("status", row.Status).
		Set("stage", row.Stage).
		Set("scheduled_at", row.ScheduledAt).
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match id=%d: %w", m.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return match.Match{}, fmt.Errorf("match %d not found", m.ID)
	}

	stored, ok, err := getMatch(ctx, r.db, m.ID)
	if err != nil {
		return match.Match{}, err
	}
	if !ok {
		return match.Match{}, fmt.Errorf("match %d vanished after update", m.ID)
	}
	return stored, nil
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, matchID int64) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("m.id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	return matchFromRow(row), true, nil
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"m.id",
		"m.team_a_id",
		"m.team_b_id",
		"ta.name AS team_a_name",
		"tb.name AS team_b_name",
		"m.status",
		"m.stage",
		"m.scheduled_at",
		"m.created_at",
	).
		From("matches m").
		LeftJoin("teams ta", "ta.id = m.team_a_id").
		LeftJoin("teams tb", "tb.id = m.team_b_id")
}
