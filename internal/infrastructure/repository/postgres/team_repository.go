package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

const teamNameConstraint = "teams_name_key"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := teamBaseSelectBuilder().
		OrderBy("t.created_at DESC", "t.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teamsFromRows(rows), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return getTeam(ctx, r.db, teamID)
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []int64) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	query, args, err := teamBaseSelectBuilder().
		Where(qb.In("t.id", int64Args(teamIDs))).
		OrderBy("t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get teams by ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}
	return teamsFromRows(rows), nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamInsertFromDomain(t), "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var teamID int64
	if err := r.db.GetContext(ctx, &teamID, query, args...); err != nil {
		if isUniqueViolation(err, teamNameConstraint) {
			return team.Team{}, team.ErrDuplicateName
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return r.reload(ctx, teamID)
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) (team.Team, error) {
	row := teamInsertFromDomain(t)
	query, args, err := qb.Update("teams").
		Set("name", row.Name).
		Set("color", row.Color).
		Set("line_count", row.LineCount).
		Set("formation", row.Formation).
		Set("reserves_count", row.ReservesCount).
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build update team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, teamNameConstraint) {
			return team.Team{}, team.ErrDuplicateName
		}
		return team.Team{}, fmt.Errorf("update team id=%d: %w", t.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return team.Team{}, fmt.Errorf("team %d not found", t.ID)
	}

	return r.reload(ctx, t.ID)
}

// Delete relies on the foreign keys: players.team_id is set to null, while the
// lineup and the team's matches cascade.
func (r *TeamRepository) Delete(ctx context.Context, teamID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("teams").Where(qb.Eq("id", teamID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete team id=%d: %w", teamID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete team id=%d rows affected: %w", teamID, err)
	}
	return n > 0, nil
}

func (r *TeamRepository) reload(ctx context.Context, teamID int64) (team.Team, error) {
	out, ok, err := getTeam(ctx, r.db, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if !ok {
		return team.Team{}, fmt.Errorf("team %d vanished after write", teamID)
	}
	return out, nil
}

func getTeam(ctx context.Context, q sqlx.QueryerContext, teamID int64) (team.Team, bool, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("t.id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%d: %w", teamID, err)
	}
	return teamFromRow(row), true, nil
}

func teamsFromRows(rows []teamTableModel) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out
}

var teamColumns = []string{
	"t.id",
	"t.name",
	"t.color",
	"t.line_count",
	"t.formation",
	"t.reserves_count",
	"t.created_at",
	"COUNT(p.id) AS player_count",
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(teamColumns...).
		From("teams t").
		LeftJoin("players p", "p.team_id = t.id").
		GroupBy("t.id")
}

func normalizeTeamName(name string) string {
	return strings.TrimSpace(name)
}
