package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	qb "github.com/riskibarqy/club-dashboard/internal/platform/querybuilder"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches constraint", func(t *testing.T) {
		err := fmt.Errorf("insert team: %w", &pq.Error{Code: "23505", Constraint: teamNameConstraint})
		if !isUniqueViolation(err, teamNameConstraint) {
			t.Fatalf("expected unique violation on %s", teamNameConstraint)
		}
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected unique violation for any constraint")
		}
	})

	t.Run("ignores other constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: starIndexConstraint}
		if isUniqueViolation(err, teamNameConstraint) {
			t.Fatalf("expected false for a different constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Constraint: teamNameConstraint}
		if isUniqueViolation(err, "") {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("duplicate key"), "") {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableRoundTrip(t *testing.T) {
	n := 7
	if got := intPtr(nullInt32(&n)); got == nil || *got != 7 {
		t.Fatalf("unexpected int round trip: %v", got)
	}
	if got := intPtr(nullInt32(nil)); got != nil {
		t.Fatalf("expected nil int, got %v", *got)
	}

	id := int64(42)
	if got := int64Ptr(nullInt64(&id)); got == nil || *got != 42 {
		t.Fatalf("unexpected int64 round trip: %v", got)
	}

	local := time.Date(2026, 3, 1, 18, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	got := timePtr(nullTime(&local))
	if got == nil || !got.Equal(local) || got.Location() != time.UTC {
		t.Fatalf("expected the same instant in UTC, got %v", got)
	}
}

func TestLineupRowMapping(t *testing.T) {
	in := lineup.New(3)
	in.Slots[lineup.SlotGoalkeeper] = 10
	in.Slots[lineup.SlotReserve2] = 11

	insert := lineupInsertFromDomain(in)
	if !insert.Goalkeeper.Valid || insert.Goalkeeper.Int64 != 10 {
		t.Fatalf("unexpected goalkeeper column: %+v", insert.Goalkeeper)
	}
	if insert.Forward.Valid {
		t.Fatalf("expected empty forward slot to be null")
	}

	out := lineupFromRow(lineupTableModel{
		TeamID:     3,
		Goalkeeper: insert.Goalkeeper,
		Reserve2:   insert.Reserve2,
	})
	if len(out.Slots) != 2 || out.Slots[lineup.SlotGoalkeeper] != 10 || out.Slots[lineup.SlotReserve2] != 11 {
		t.Fatalf("unexpected slots after mapping: %+v", out.Slots)
	}
}

func TestMatchRowMapping(t *testing.T) {
	stage := match.StageFinal
	insert := matchInsertFromDomain(match.Match{TeamAID: 1, TeamBID: 2, Status: match.StatusScheduled, Stage: &stage})
	if !insert.Stage.Valid || insert.Stage.String != "final" {
		t.Fatalf("unexpected stage column: %+v", insert.Stage)
	}
	if insert.ScheduledAt.Valid {
		t.Fatalf("expected null scheduled_at")
	}

	out := matchFromRow(matchTableModel{ID: 5, TeamAID: 1, TeamBID: 2, Status: "playing"})
	if out.Stage != nil || out.Status != match.StatusPlaying {
		t.Fatalf("unexpected match: %+v", out)
	}
}

func TestTeamBaseSelectCountsPlayers(t *testing.T) {
	query, args, err := teamBaseSelectBuilder().Where(qb.Eq("t.id", int64(4))).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT t.id, t.name, t.color, t.line_count, t.formation, t.reserves_count, t.created_at, COUNT(p.id) AS player_count " +
		"FROM teams t LEFT JOIN players p ON p.team_id = t.id WHERE t.id = $1 GROUP BY t.id"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != int64(4) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
