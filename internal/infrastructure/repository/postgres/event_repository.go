package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

const starIndexConstraint = "match_events_one_star_per_match"

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID int64) ([]match.Event, error) {
	return listEvents(ctx, r.db, qb.Eq("e.match_id", matchID))
}

func (r *EventRepository) ListByMatches(ctx context.Context, matchIDs []int64) (map[int64][]match.Event, error) {
	out := make(map[int64][]match.Event, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	events, err := listEvents(ctx, r.db, qb.In("e.match_id", int64Args(matchIDs)))
	if err != nil {
		return nil, err
	}
	for _, matchID := range matchIDs {
		out[matchID] = []match.Event{}
	}
	for _, e := range events {
		out[e.MatchID] = append(out[e.MatchID], e)
	}
	return out, nil
}

func (r *EventRepository) Append(ctx context.Context, e match.Event) (match.Event, error) {
	return insertEvent(ctx, r.db, e)
}

func (r *EventRepository) Delete(ctx context.Context, matchID, eventID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("id", eventID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete event query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete event id=%d match=%d: %w", eventID, matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete event id=%d rows affected: %w", eventID, err)
	}
	return n > 0, nil
}

// ToggleStar locks the match row so concurrent toggles for one match run one
// after another. The partial unique index on STAR rows backs this up.
func (r *EventRepository) ToggleStar(ctx context.Context, e match.Event) (match.Event, bool, error) {
	var (
		stored  match.Event
		removed bool
	)
	err := withTx(ctx, r.db, "star toggle", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select("id").
			From("matches").
			Where(qb.Eq("id", e.MatchID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock match query: %w", err)
		}
		var lockedID int64
		if err := tx.GetContext(ctx, &lockedID, lockQuery, lockArgs...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("match %d does not exist", e.MatchID)
			}
			return fmt.Errorf("lock match id=%d: %w", e.MatchID, err)
		}

		stars, err := listEvents(ctx, tx, qb.Eq("e.match_id", e.MatchID), qb.Eq("e.type", string(match.EventStar)))
		if err != nil {
			return err
		}

		deleteIDs, insert := match.PlanStarToggle(stars, e.PlayerID)
		if len(deleteIDs) > 0 {
			deleteQuery, deleteArgs, err := qb.DeleteFrom("match_events").
				Where(qb.In("id", int64Args(deleteIDs)), qb.Eq("match_id", e.MatchID)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build delete stars query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
				return fmt.Errorf("delete stars match=%d: %w", e.MatchID, err)
			}
		}
		if !insert {
			removed = true
			return nil
		}

		stored, err = insertEvent(ctx, tx, e)
		return err
	})
	if err != nil {
		return match.Event{}, false, err
	}
	return stored, removed, nil
}

func insertEvent(ctx context.Context, q sqlx.QueryerContext, e match.Event) (match.Event, error) {
	query, args, err := qb.InsertModel("match_events", eventInsertModel{
		MatchID:  e.MatchID,
		TeamID:   e.TeamID,
		PlayerID: e.PlayerID,
		Type:     string(e.Type),
		Minute:   nullInt32(e.Minute),
	}, "RETURNING id")
	if err != nil {
		return match.Event{}, fmt.Errorf("build insert event query: %w", err)
	}

	var eventID int64
	if err := sqlx.GetContext(ctx, q, &eventID, query, args...); err != nil {
		if isUniqueViolation(err, starIndexConstraint) {
			return match.Event{}, fmt.Errorf("match %d already has a star: %w", e.MatchID, err)
		}
		return match.Event{}, fmt.Errorf("insert event match=%d: %w", e.MatchID, err)
	}

	events, err := listEvents(ctx, q, qb.Eq("e.id", eventID))
	if err != nil {
		return match.Event{}, err
	}
	if len(events) == 0 {
		return match.Event{}, fmt.Errorf("event %d vanished after insert", eventID)
	}
	return events[0], nil
}

func listEvents(ctx context.Context, q sqlx.QueryerContext, conditions ...qb.Condition) ([]match.Event, error) {
	query, args, err := qb.Select(
		"e.id",
		"e.match_id",
		"e.team_id",
		"e.player_id",
		"p.name AS player_name",
		"e.type",
		"e.minute",
		"e.created_at",
	).
		From("match_events e").
		LeftJoin("players p", "p.id = e.player_id").
		Where(conditions...).
		OrderBy("e.created_at", "e.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}
