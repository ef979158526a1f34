package draw

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
)

const (
	MinTeamCount      = 2
	DefaultNamePrefix = "Team"
)

var ErrTeamCount = errors.New("team count must be at least 2")

// Shuffler randomizes order in place. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RandomShuffler uses the package-level generator, which is safe for
// concurrent use.
type RandomShuffler struct{}

func (RandomShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type Options struct {
	TeamCount  int
	PaidOnly   bool
	NamePrefix string
}

type Team struct {
	Name    string
	TeamID  int64
	Players []player.Player
}

type Result struct {
	Teams []Team
	Total int
}

// Assignment is the persisted form of one drawn team.
type Assignment struct {
	TeamName  string
	PlayerIDs []int64
}

func TeamName(prefix string, index int) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultNamePrefix
	}
	return fmt.Sprintf("%s %d", prefix, index+1)
}

// Draw splits pool into opts.TeamCount teams. Each position bucket is
// shuffled on its own, every team takes one player per position in DrawOrder,
// then the shuffled leftovers are dealt round-robin.
func Draw(pool []player.Player, opts Options, shuffler Shuffler) (Result, error) {
	if opts.TeamCount < MinTeamCount {
		return Result{}, ErrTeamCount
	}
	if shuffler == nil {
		shuffler = RandomShuffler{}
	}

	teams := make([]Team, opts.TeamCount)
	for i := range teams {
		teams[i] = Team{Name: TeamName(opts.NamePrefix, i), Players: []player.Player{}}
	}

	buckets := make(map[player.Position][]player.Player, len(player.DrawOrder))
	var leftovers []player.Player
	total := 0
	for _, p := range pool {
		if opts.PaidOnly && !p.Paid {
			continue
		}
		total++
		if _, known := player.AllPositions[p.Position]; !known {
			leftovers = append(leftovers, p)
			continue
		}
		buckets[p.Position] = append(buckets[p.Position], p)
	}

	for _, pos := range player.DrawOrder {
		bucket := buckets[pos]
		shuffler.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
	}

	for i := range teams {
		for _, pos := range player.DrawOrder {
			bucket := buckets[pos]
			if len(bucket) == 0 {
				continue
			}
			teams[i].Players = append(teams[i].Players, bucket[0])
			buckets[pos] = bucket[1:]
		}
	}

	for _, pos := range player.DrawOrder {
		leftovers = append(leftovers, buckets[pos]...)
	}
	shuffler.Shuffle(len(leftovers), func(i, j int) {
		leftovers[i], leftovers[j] = leftovers[j], leftovers[i]
	})
	for i, p := range leftovers {
		idx := i % len(teams)
		teams[idx].Players = append(teams[idx].Players, p)
	}

	return Result{Teams: teams, Total: total}, nil
}

func (r Result) Assignments() []Assignment {
	out := make([]Assignment, 0, len(r.Teams))
	for _, t := range r.Teams {
		ids := make([]int64, 0, len(t.Players))
		for _, p := range t.Players {
			ids = append(ids, p.ID)
		}
		out = append(out, Assignment{TeamName: t.Name, PlayerIDs: ids})
	}
	return out
}
