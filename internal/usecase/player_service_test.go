package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	playermock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestPlayerService_CreateValidatesInput(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(playermock.NewRepository(t), teammock.NewRepository(t))
	bigNumber := 120

	cases := []CreatePlayerInput{
		{Name: "", Position: "GOL"},
		{Name: "Ana", Position: "LIBERO"},
		{Name: "Ana", Position: "ATA", Number: &bigNumber},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestPlayerService_CreateWithTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	svc := NewPlayerService(playerRepo, teamRepo)
	teamID := int64(2)

	teamRepo.On("GetByID", mock.Anything, teamID).Return(team.Team{ID: teamID, Name: "Team 2"}, true, nil).Once()
	playerRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(p player.Player) bool {
			return p.Name == "Ana" && p.Position == player.PositionRightWing && p.OnTeam(teamID) && p.Paid
		})).
		Return(func(_ context.Context, p player.Player) (player.Player, error) {
			p.ID = 31
			return p, nil
		}).
		Once()

	got, err := svc.Create(ctx, CreatePlayerInput{Name: " Ana ", Position: "alad", Paid: true, TeamID: &teamID})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if got.ID != 31 || got.TeamName != "Team 2" {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestPlayerService_UpdateClearsTeam(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	svc := NewPlayerService(playerRepo, teammock.NewRepository(t))
	teamID := int64(1)

	playerRepo.On("GetByID", mock.Anything, int64(5)).
		Return(player.Player{ID: 5, Name: "Bia", Position: player.PositionDefender, TeamID: &teamID, TeamName: "Team 1"}, true, nil).
		Once()
	playerRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(p player.Player) bool { return p.ID == 5 && p.TeamID == nil })).
		Return(func(_ context.Context, p player.Player) (player.Player, error) { return p, nil }).
		Once()

	got, err := svc.Update(context.Background(), UpdatePlayerInput{PlayerID: 5, ClearTeam: true})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if got.TeamID != nil || got.Name != "Bia" {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestPlayerService_UpdateUnknownTeam(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	svc := NewPlayerService(playerRepo, teamRepo)
	teamID := int64(9)

	playerRepo.On("GetByID", mock.Anything, int64(5)).
		Return(player.Player{ID: 5, Name: "Bia", Position: player.PositionDefender}, true, nil).
		Once()
	teamRepo.On("GetByID", mock.Anything, teamID).Return(team.Team{}, false, nil).Once()

	if _, err := svc.Update(context.Background(), UpdatePlayerInput{PlayerID: 5, TeamID: &teamID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_DeleteMissing(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	svc := NewPlayerService(playerRepo, teammock.NewRepository(t))

	playerRepo.On("Delete", mock.Anything, int64(8)).Return(false, nil).Once()

	if err := svc.Delete(context.Background(), 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
