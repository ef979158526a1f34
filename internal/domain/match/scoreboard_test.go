package match

import (
	"math/rand/v2"
	"testing"
)

func TestDeriveScoreboard_GoalsPerSide(t *testing.T) {
	m := Match{ID: 1, TeamAID: 100, TeamBID: 200}
	events := []Event{
		{ID: 1, MatchID: 1, TeamID: 100, PlayerID: 10, Type: EventGoal},
		{ID: 2, MatchID: 1, TeamID: 200, PlayerID: 20, Type: EventGoal},
		{ID: 3, MatchID: 1, TeamID: 200, PlayerID: 20, Type: EventYellow},
		{ID: 4, MatchID: 2, TeamID: 100, PlayerID: 10, Type: EventGoal},
		{ID: 5, MatchID: 1, TeamID: 100, PlayerID: 11, Type: EventStar},
	}

	board := DeriveScoreboard(m, events)
	if board.ScoreA != 1 || board.ScoreB != 1 {
		t.Fatalf("score = %d:%d, want 1:1", board.ScoreA, board.ScoreB)
	}
	if board.StarPlayerID == nil || *board.StarPlayerID != 11 {
		t.Fatalf("unexpected star holder: %v", board.StarPlayerID)
	}
	if board.YellowCards[20] != 1 {
		t.Fatalf("expected one yellow for player 20, got %d", board.YellowCards[20])
	}
	if board.Score(m, 300) != 0 {
		t.Fatalf("a team outside the match has no score")
	}
}

func TestDeriveScoreboard_MatchesGoalCountAfterEveryMutation(t *testing.T) {
	m := Match{ID: 7, TeamAID: 1, TeamBID: 2}
	rng := rand.New(rand.NewPCG(42, 7))
	types := []EventType{EventGoal, EventYellow, EventRed, EventGoal}

	var log []Event
	nextID := int64(1)
	for step := 0; step < 200; step++ {
		if len(log) > 0 && rng.IntN(3) == 0 {
			i := rng.IntN(len(log))
			log = append(log[:i], log[i+1:]...)
		} else {
			log = append(log, Event{
				ID:       nextID,
				MatchID:  m.ID,
				TeamID:   int64(1 + rng.IntN(2)),
				PlayerID: int64(10 + rng.IntN(4)),
				Type:     types[rng.IntN(len(types))],
			})
			nextID++
		}

		board := DeriveScoreboard(m, log)
		for _, teamID := range []int64{m.TeamAID, m.TeamBID} {
			want := 0
			for _, e := range log {
				if e.Type == EventGoal && e.TeamID == teamID {
					want++
				}
			}
			if got := board.Score(m, teamID); got != want {
				t.Fatalf("step %d: score(%d) = %d, want %d", step, teamID, got, want)
			}
		}
	}
}

func TestPlanStarToggle(t *testing.T) {
	existing := []Event{
		{ID: 1, Type: EventGoal, PlayerID: 10},
		{ID: 2, Type: EventStar, PlayerID: 10},
	}

	deleteIDs, insert := PlanStarToggle(existing, 10)
	if insert {
		t.Fatalf("same player star should toggle off")
	}
	if len(deleteIDs) != 1 || deleteIDs[0] != 2 {
		t.Fatalf("unexpected delete ids: %v", deleteIDs)
	}

	deleteIDs, insert = PlanStarToggle(existing, 20)
	if !insert || len(deleteIDs) != 1 {
		t.Fatalf("different player should replace the star, got insert=%v delete=%v", insert, deleteIDs)
	}

	deleteIDs, insert = PlanStarToggle(existing[:1], 20)
	if !insert || len(deleteIDs) != 0 {
		t.Fatalf("first star should just insert, got insert=%v delete=%v", insert, deleteIDs)
	}
}

func TestParseEventType(t *testing.T) {
	if got, err := ParseEventType("star"); err != nil || got != EventStar {
		t.Fatalf("ParseEventType(star) = %q, %v", got, err)
	}
	if _, err := ParseEventType("ASSIST"); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}

func TestMatchValidate(t *testing.T) {
	if err := (Match{TeamAID: 1, TeamBID: 1, Status: StatusScheduled}).Validate(); err == nil {
		t.Fatalf("expected error for a team playing itself")
	}
	stage := Stage("friendly")
	if err := (Match{TeamAID: 1, TeamBID: 2, Status: StatusScheduled, Stage: &stage}).Validate(); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
	if err := (Match{TeamAID: 1, TeamBID: 2, Status: StatusPlaying}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
