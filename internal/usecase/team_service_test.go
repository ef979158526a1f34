package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/memory"
	clockmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/clock"
	matchmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_CreateDuplicateNameIsConflict(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	svc := NewTeamService(teamRepo, nil, nil, nil)

	teamRepo.On("Create", mock.Anything, mock.MatchedBy(func(tm team.Team) bool { return tm.Name == "Team 1" })).
		Return(team.Team{}, team.ErrDuplicateName).
		Once()

	_, err := svc.Create(context.Background(), CreateTeamInput{Name: " Team 1 "})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTeamService_CreateRequiresName(t *testing.T) {
	t.Parallel()

	svc := NewTeamService(teammock.NewRepository(t), nil, nil, nil)
	if _, err := svc.Create(context.Background(), CreateTeamInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_DeleteNullsPlayers(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	store.Load(memory.SeedTeams(), memory.SeedPlayers())
	teams := NewTeamService(store.Teams(), store.Matches(), store.Clocks(), nil)
	players := NewPlayerService(store.Players(), store.Teams())

	teamID := int64(1)
	if _, err := players.Update(ctx, UpdatePlayerInput{PlayerID: 1, TeamID: &teamID}); err != nil {
		t.Fatalf("assign player: %v", err)
	}
	got, err := teams.Get(ctx, teamID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.PlayerCount != 1 {
		t.Fatalf("player count = %d, want 1", got.PlayerCount)
	}

	if err := teams.Delete(ctx, teamID); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	p, err := players.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TeamID != nil {
		t.Fatalf("player should have no team after team delete")
	}
	roster, _ := players.List(ctx, player.Filter{TeamID: &teamID})
	if len(roster) != 0 {
		t.Fatalf("deleted team should have no roster")
	}
	if err := teams.Delete(ctx, teamID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestTeamService_DeleteClearsClocksOfTeamMatches(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	clockRepo := clockmock.NewRepository(t)
	svc := NewTeamService(teamRepo, matchRepo, clockRepo, nil)

	matchRepo.On("List", mock.Anything).Return([]match.Match{
		{ID: 7, TeamAID: 4, TeamBID: 5},
		{ID: 8, TeamAID: 1, TeamBID: 2},
		{ID: 9, TeamAID: 5, TeamBID: 4},
	}, nil).Once()
	teamRepo.On("Delete", mock.Anything, int64(4)).Return(true, nil).Once()
	clockRepo.On("Delete", mock.Anything, int64(7)).Return(nil).Once()
	// A clock store outage does not fail the delete.
	clockRepo.On("Delete", mock.Anything, int64(9)).Return(resilience.ErrCircuitOpen).Once()

	if err := svc.Delete(context.Background(), 4); err != nil {
		t.Fatalf("delete team: %v", err)
	}
}

func TestTeamService_DeleteUnknownTeamKeepsClocks(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	clockRepo := clockmock.NewRepository(t)
	svc := NewTeamService(teamRepo, matchRepo, clockRepo, nil)

	matchRepo.On("List", mock.Anything).Return([]match.Match{{ID: 7, TeamAID: 4, TeamBID: 5}}, nil).Once()
	teamRepo.On("Delete", mock.Anything, int64(4)).Return(false, nil).Once()

	if err := svc.Delete(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	clockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
