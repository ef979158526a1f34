package draw

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
)

func buildPool(counts map[player.Position]int, paid func(i int) bool) []player.Player {
	var pool []player.Player
	id := int64(1)
	for _, pos := range player.DrawOrder {
		for i := 0; i < counts[pos]; i++ {
			pool = append(pool, player.Player{
				ID:       id,
				Name:     fmt.Sprintf("%s-%d", pos, i),
				Position: pos,
				Paid:     paid(int(id)),
			})
			id++
		}
	}
	return pool
}

func alwaysPaid(int) bool { return true }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

func TestDraw_RejectsTeamCountBelowTwo(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := Draw(nil, Options{TeamCount: n}, seeded(1))
		if !errors.Is(err, ErrTeamCount) {
			t.Fatalf("teamCount=%d: expected ErrTeamCount, got %v", n, err)
		}
	}
}

func TestDraw_EmptyPoolGivesEmptyTeams(t *testing.T) {
	res, err := Draw(nil, Options{TeamCount: 3}, seeded(1))
	if err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if res.Total != 0 || len(res.Teams) != 3 {
		t.Fatalf("unexpected result: total=%d teams=%d", res.Total, len(res.Teams))
	}
	for i, team := range res.Teams {
		if want := fmt.Sprintf("Team %d", i+1); team.Name != want {
			t.Fatalf("team %d name = %q, want %q", i, team.Name, want)
		}
		if len(team.Players) != 0 {
			t.Fatalf("team %d should be empty", i)
		}
	}
}

func TestDraw_EveryTeamGetsOnePerPosition(t *testing.T) {
	for n := 2; n <= 5; n++ {
		counts := map[player.Position]int{}
		for i, pos := range player.DrawOrder {
			counts[pos] = n + i%2
		}
		pool := buildPool(counts, alwaysPaid)

		res, err := Draw(pool, Options{TeamCount: n}, seeded(uint64(n)))
		if err != nil {
			t.Fatalf("Draw error: %v", err)
		}
		for ti, team := range res.Teams {
			firstPass := team.Players[:len(player.DrawOrder)]
			for pi, pos := range player.DrawOrder {
				if firstPass[pi].Position != pos {
					t.Fatalf("n=%d team %d slot %d = %s, want %s", n, ti, pi, firstPass[pi].Position, pos)
				}
			}
		}
	}
}

func TestDraw_ConservationAndFairness(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rng := seeded(seed)
		counts := map[player.Position]int{}
		for _, pos := range player.DrawOrder {
			counts[pos] = rng.IntN(6)
		}
		pool := buildPool(counts, func(i int) bool { return i%3 != 0 })
		pool = append(pool, player.Player{ID: 999, Name: "legacy", Position: "MID", Paid: true})
		n := 2 + rng.IntN(4)

		for _, paidOnly := range []bool{false, true} {
			res, err := Draw(pool, Options{TeamCount: n, PaidOnly: paidOnly}, rng)
			if err != nil {
				t.Fatalf("Draw error: %v", err)
			}

			want := 0
			eligible := map[player.Position]int{}
			for _, p := range pool {
				if !paidOnly || p.Paid {
					want++
					eligible[p.Position]++
				}
			}

			seen := make(map[int64]struct{})
			minSize, maxSize := len(pool)+1, -1
			for _, team := range res.Teams {
				minSize = min(minSize, len(team.Players))
				maxSize = max(maxSize, len(team.Players))
				for _, p := range team.Players {
					if paidOnly && !p.Paid {
						t.Fatalf("seed %d: unpaid player %d drawn with paidOnly", seed, p.ID)
					}
					if _, dup := seen[p.ID]; dup {
						t.Fatalf("seed %d: player %d drawn twice", seed, p.ID)
					}
					seen[p.ID] = struct{}{}
				}
			}
			if len(seen) != want || res.Total != want {
				t.Fatalf("seed %d: drew %d players (total %d), want %d", seed, len(seen), res.Total, want)
			}
			if maxSize-minSize > 1 && len(pool) > 0 {
				// Position passes can leave gaps when buckets run dry; only
				// check fairness when every bucket covers every team.
				covered := true
				for _, pos := range player.DrawOrder {
					if eligible[pos] < n {
						covered = false
					}
				}
				if covered {
					t.Fatalf("seed %d: team sizes differ by %d", seed, maxSize-minSize)
				}
			}
		}
	}
}

func TestDraw_SixPlayerScenario(t *testing.T) {
	pool := buildPool(map[player.Position]int{
		player.PositionGoalkeeper: 2,
		player.PositionDefender:   2,
		player.PositionMidfielder: 1,
		player.PositionForward:    1,
	}, func(int) bool { return false })

	for seed := uint64(1); seed <= 20; seed++ {
		res, err := Draw(pool, Options{TeamCount: 2, PaidOnly: false}, seeded(seed))
		if err != nil {
			t.Fatalf("Draw error: %v", err)
		}
		for i, team := range res.Teams {
			if len(team.Players) != 3 {
				t.Fatalf("seed %d: team %d has %d players, want 3", seed, i, len(team.Players))
			}
			if team.Players[0].Position != player.PositionGoalkeeper || team.Players[1].Position != player.PositionDefender {
				t.Fatalf("seed %d: team %d first pass = %s,%s", seed, i, team.Players[0].Position, team.Players[1].Position)
			}
		}
	}
}

func TestDraw_CustomPrefixAndAssignments(t *testing.T) {
	pool := buildPool(map[player.Position]int{player.PositionGoalkeeper: 2}, alwaysPaid)

	res, err := Draw(pool, Options{TeamCount: 2, NamePrefix: "Time"}, seeded(3))
	if err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	assignments := res.Assignments()
	if len(assignments) != 2 || assignments[0].TeamName != "Time 1" || assignments[1].TeamName != "Time 2" {
		t.Fatalf("unexpected assignments: %+v", assignments)
	}
	if len(assignments[0].PlayerIDs) != 1 || len(assignments[1].PlayerIDs) != 1 {
		t.Fatalf("each team should hold one keeper: %+v", assignments)
	}
}
