package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type recordingPublisher struct {
	mu      sync.Mutex
	updates []ScoreboardUpdate
}

func (p *recordingPublisher) PublishScoreboard(_ context.Context, update ScoreboardUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, update)
}

type fixedMinute struct {
	minute int
	ok     bool
	err    error
}

func (f fixedMinute) CurrentMinute(context.Context, int64) (int, bool, error) {
	return f.minute, f.ok, f.err
}

func newMemoryMatchService(t *testing.T) (*MatchService, *memory.Store, match.Match) {
	t.Helper()
	store := memory.NewStore()
	store.Load(memory.SeedTeams(), memory.SeedPlayers())
	svc := NewMatchService(store.Matches(), store.Events(), store.Teams(), store.Players(), nil)

	m, err := svc.Create(t.Context(), CreateMatchInput{TeamAID: 1, TeamBID: 2})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return svc, store, m
}

func TestMatchService_GoalsDeriveScore(t *testing.T) {
	ctx := t.Context()
	svc, _, m := newMemoryMatchService(t)

	if _, err := svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 10, Type: "GOAL"}); err != nil {
		t.Fatalf("add goal A: %v", err)
	}
	if _, err := svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 2, PlayerID: 11, Type: "GOAL"}); err != nil {
		t.Fatalf("add goal B: %v", err)
	}

	detail, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.Scoreboard.ScoreA != 1 || detail.Scoreboard.ScoreB != 1 {
		t.Fatalf("score = %d:%d, want 1:1", detail.Scoreboard.ScoreA, detail.Scoreboard.ScoreB)
	}
	if len(detail.Events) != 2 || detail.Events[0].PlayerID != 10 {
		t.Fatalf("events should be ordered by creation: %+v", detail.Events)
	}

	summaries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ScoreA != 1 || summaries[0].ScoreB != 1 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestMatchService_StarToggle(t *testing.T) {
	ctx := t.Context()
	svc, _, m := newMemoryMatchService(t)

	first, err := svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 10, Type: "STAR"})
	if err != nil || first.Removed || first.Event == nil {
		t.Fatalf("first star: %+v err=%v", first, err)
	}

	second, err := svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 10, Type: "STAR"})
	if err != nil {
		t.Fatalf("second star: %v", err)
	}
	if !second.Removed || second.Event != nil {
		t.Fatalf("same player star should be removed, got %+v", second)
	}

	detail, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.Scoreboard.StarPlayerID != nil || len(detail.Events) != 0 {
		t.Fatalf("no star should remain: %+v", detail.Events)
	}

	_, _ = svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 10, Type: "STAR"})
	_, _ = svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 2, PlayerID: 11, Type: "STAR"})
	detail, _ = svc.Get(ctx, m.ID)
	if len(detail.Events) != 1 || detail.Scoreboard.StarPlayerID == nil || *detail.Scoreboard.StarPlayerID != 11 {
		t.Fatalf("star should move to player 11: %+v", detail.Events)
	}
}

func TestMatchService_DeleteEventScopedToMatch(t *testing.T) {
	ctx := t.Context()
	svc, _, m1 := newMemoryMatchService(t)
	m2, err := svc.Create(ctx, CreateMatchInput{TeamAID: 2, TeamBID: 1})
	if err != nil {
		t.Fatalf("create second match: %v", err)
	}

	res, err := svc.AddEvent(ctx, AddEventInput{MatchID: m2.ID, TeamID: 2, PlayerID: 3, Type: "GOAL"})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}

	err = svc.DeleteEvent(ctx, m1.ID, res.Event.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-match delete, got %v", err)
	}
	detail, _ := svc.Get(ctx, m2.ID)
	if detail.Scoreboard.ScoreA != 1 {
		t.Fatalf("goal of match 2 must survive, score A = %d", detail.Scoreboard.ScoreA)
	}

	if err := svc.DeleteEvent(ctx, m2.ID, res.Event.ID); err != nil {
		t.Fatalf("scoped delete: %v", err)
	}
	detail, _ = svc.Get(ctx, m2.ID)
	if detail.Scoreboard.ScoreA != 0 {
		t.Fatalf("score should drop after delete, got %d", detail.Scoreboard.ScoreA)
	}
}

func TestMatchService_AddEventValidation(t *testing.T) {
	ctx := t.Context()
	svc, _, m := newMemoryMatchService(t)
	negative := -1

	cases := []struct {
		name  string
		input AddEventInput
		want  error
	}{
		{name: "unknown type", input: AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 1, Type: "ASSIST"}, want: ErrInvalidInput},
		{name: "negative minute", input: AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 1, Type: "GOAL", Minute: &negative}, want: ErrInvalidInput},
		{name: "team not in match", input: AddEventInput{MatchID: m.ID, TeamID: 9, PlayerID: 1, Type: "GOAL"}, want: ErrInvalidInput},
		{name: "missing match", input: AddEventInput{MatchID: 404, TeamID: 1, PlayerID: 1, Type: "GOAL"}, want: ErrNotFound},
		{name: "missing player", input: AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 404, Type: "GOAL"}, want: ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddEvent(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMatchService_StampsClockMinuteAndPublishes(t *testing.T) {
	ctx := t.Context()
	svc, _, m := newMemoryMatchService(t)
	publisher := &recordingPublisher{}
	svc.SetPublisher(publisher)
	svc.SetMinuteProvider(fixedMinute{minute: 27, ok: true})

	res, err := svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 2, PlayerID: 4, Type: "YELLOW"})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if res.Event.Minute == nil || *res.Event.Minute != 27 {
		t.Fatalf("expected clock minute 27, got %v", res.Event.Minute)
	}

	explicit := 3
	res, err = svc.AddEvent(ctx, AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 1, Type: "GOAL", Minute: &explicit})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if *res.Event.Minute != 3 {
		t.Fatalf("explicit minute must win, got %d", *res.Event.Minute)
	}

	if len(publisher.updates) != 2 {
		t.Fatalf("expected two live updates, got %d", len(publisher.updates))
	}
	last := publisher.updates[1]
	if last.Scoreboard.ScoreA != 1 || len(last.Events) != 2 {
		t.Fatalf("unexpected live update: %+v", last)
	}
}

func TestMatchService_ClockFailureDoesNotBlockEvents(t *testing.T) {
	svc, _, m := newMemoryMatchService(t)
	svc.SetMinuteProvider(fixedMinute{err: errors.New("redis down")})

	res, err := svc.AddEvent(t.Context(), AddEventInput{MatchID: m.ID, TeamID: 1, PlayerID: 1, Type: "RED"})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if res.Event.Minute != nil {
		t.Fatalf("minute should stay empty when the clock is unavailable")
	}
}

type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestMatchService_GeneratePairsAndDropsOdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	svc := NewMatchService(matchRepo, matchmock.NewEventRepository(t), teamRepo, playermock.NewRepository(t), nil)
	svc.SetShuffler(reverseShuffler{})

	ids := []int64{1, 2, 3}
	teamRepo.
		On("GetByIDs", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), ids).
		Return([]team.Team{{ID: 1, Name: "Team 1"}, {ID: 2, Name: "Team 2"}, {ID: 3, Name: "Team 3"}}, nil).
		Once()
	matchRepo.
		On("CreateMany", mock.Anything, mock.MatchedBy(func(ms []match.Match) bool {
			return len(ms) == 1 && ms[0].TeamAID == 3 && ms[0].TeamBID == 2 && ms[0].Status == match.StatusScheduled
		})).
		Return(func(_ context.Context, ms []match.Match) ([]match.Match, error) {
			ms[0].ID = 50
			return ms, nil
		}).
		Once()

	got, err := svc.Generate(ctx, ids)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 1 || got[0].ID != 50 || got[0].TeamAName != "Team 3" {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if ids[0] != 1 {
		t.Fatalf("caller slice must not be shuffled in place")
	}
}

func TestMatchService_GenerateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	svc := NewMatchService(matchmock.NewRepository(t), matchmock.NewEventRepository(t), teamRepo, playermock.NewRepository(t), nil)

	if _, err := svc.Generate(ctx, []int64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for one team, got %v", err)
	}
	if _, err := svc.Generate(ctx, []int64{1, 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}

	teamRepo.
		On("GetByIDs", mock.Anything, []int64{1, 9}).
		Return([]team.Team{{ID: 1, Name: "Team 1"}}, nil).
		Once()
	if _, err := svc.Generate(ctx, []int64{1, 9}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}

func TestMatchService_StoreFailureIsPersistenceError(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	svc := NewMatchService(matchRepo, matchmock.NewEventRepository(t), teammock.NewRepository(t), playermock.NewRepository(t), nil)

	matchRepo.On("GetByID", mock.Anything, int64(1)).Return(match.Match{}, false, errors.New("connection refused")).Once()

	_, err := svc.Get(context.Background(), 1)
	if !Is(err, ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if Is(err, ErrNotFound) {
		t.Fatalf("store failure must not look like not found")
	}
}
