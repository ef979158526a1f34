package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	lineupmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/lineup"
	playermock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func teamFilter(teamID int64) interface{} {
	return mock.MatchedBy(func(f player.Filter) bool {
		return f.TeamID != nil && *f.TeamID == teamID && !f.PaidOnly
	})
}

func TestLineupService_GetRepairsStaleSlotsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)
	svc := NewLineupService(teamRepo, playerRepo, lineupRepo, nil)

	stale := lineup.New(1)
	stale.Slots[lineup.SlotGoalkeeper] = 10
	stale.Slots[lineup.SlotForward] = 20

	teamRepo.On("GetByID", mock.Anything, int64(1)).Return(team.Team{ID: 1, Name: "Team 1"}, true, nil).Once()
	lineupRepo.On("GetByTeam", mock.Anything, int64(1)).Return(stale, true, nil).Once()
	playerRepo.On("List", mock.Anything, teamFilter(1)).Return([]player.Player{{ID: 10, Name: "Caio"}}, nil).Once()
	lineupRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(l lineup.Lineup) bool {
			_, hasForward := l.Slots[lineup.SlotForward]
			return l.TeamID == 1 && l.Slots[lineup.SlotGoalkeeper] == 10 && !hasForward
		})).
		Return(func(_ context.Context, l lineup.Lineup) (lineup.Lineup, error) { return l, nil }).
		Once()

	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get lineup: %v", err)
	}
	if _, ok := got.Player(lineup.SlotForward); ok {
		t.Fatalf("stale forward slot should be emptied")
	}
}

func TestLineupService_GetCleanLineupDoesNotWrite(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)
	svc := NewLineupService(teamRepo, playerRepo, lineupRepo, nil)

	clean := lineup.New(1)
	clean.Slots[lineup.SlotGoalkeeper] = 10

	teamRepo.On("GetByID", mock.Anything, int64(1)).Return(team.Team{ID: 1}, true, nil).Once()
	lineupRepo.On("GetByTeam", mock.Anything, int64(1)).Return(clean, true, nil).Once()
	playerRepo.On("List", mock.Anything, teamFilter(1)).Return([]player.Player{{ID: 10}}, nil).Once()

	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get lineup: %v", err)
	}
	if id, _ := got.Player(lineup.SlotGoalkeeper); id != 10 {
		t.Fatalf("goalkeeper slot = %d, want 10", id)
	}
	lineupRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestLineupService_GetMissingLineupIsEmpty(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)
	svc := NewLineupService(teamRepo, playermock.NewRepository(t), lineupRepo, nil)

	teamRepo.On("GetByID", mock.Anything, int64(2)).Return(team.Team{ID: 2}, true, nil).Once()
	lineupRepo.On("GetByTeam", mock.Anything, int64(2)).Return(lineup.Lineup{}, false, nil).Once()

	got, err := svc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("get lineup: %v", err)
	}
	if got.TeamID != 2 || len(got.Slots) != 0 {
		t.Fatalf("expected empty lineup for team 2, got %+v", got)
	}
}

func TestLineupService_SaveRejectsPlayerFromAnotherTeam(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	svc := NewLineupService(teamRepo, playerRepo, lineupmock.NewRepository(t), nil)

	teamRepo.On("GetByID", mock.Anything, int64(1)).Return(team.Team{ID: 1}, true, nil).Once()
	playerRepo.On("List", mock.Anything, teamFilter(1)).Return([]player.Player{{ID: 10}}, nil).Once()

	_, err := svc.Save(context.Background(), SaveLineupInput{
		TeamID: 1,
		Slots:  map[string]int64{"goleiro": 10, "frente": 99},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_SaveRejectsDuplicatePlayer(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	svc := NewLineupService(teamRepo, playermock.NewRepository(t), lineupmock.NewRepository(t), nil)

	teamRepo.On("GetByID", mock.Anything, int64(1)).Return(team.Team{ID: 1}, true, nil).Once()

	_, err := svc.Save(context.Background(), SaveLineupInput{
		TeamID: 1,
		Slots:  map[string]int64{"goleiro": 10, "reserva1": 10},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_UnknownTeam(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	svc := NewLineupService(teamRepo, playermock.NewRepository(t), lineupmock.NewRepository(t), nil)

	teamRepo.On("GetByID", mock.Anything, int64(5)).Return(team.Team{}, false, nil).Once()

	if _, err := svc.Get(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
