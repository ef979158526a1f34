package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

type CreatePlayerInput struct {
	Name     string
	Position string
	Paid     bool
	Number   *int
	TeamID   *int64
}

type UpdatePlayerInput struct {
	PlayerID    int64
	Name        *string
	Position    *string
	Paid        *bool
	Number      *int
	ClearNumber bool
	TeamID      *int64
	ClearTeam   bool
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	if filter.TeamID != nil && *filter.TeamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure("list players", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, storeFailure("get player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	pos, err := player.ParsePosition(input.Position)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item := player.Player{
		Name:      strings.TrimSpace(input.Name),
		Position:  pos,
		Paid:      input.Paid,
		Number:    input.Number,
		TeamID:    input.TeamID,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if item.TeamID != nil {
		t, err := requireTeam(ctx, s.teamRepo, *item.TeamID)
		if err != nil {
			return player.Player{}, err
		}
		item.TeamName = t.Name
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, storeFailure("create player", err)
	}
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update", attribute.Int64("player.id", input.PlayerID))
	defer span.End()

	current, err := s.Get(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	change := player.Update{
		Name:      input.Name,
		Paid:      input.Paid,
		Number:    input.Number,
		ClearNum:  input.ClearNumber,
		TeamID:    input.TeamID,
		ClearTeam: input.ClearTeam,
	}
	if input.Position != nil {
		pos, err := player.ParsePosition(*input.Position)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		change.Position = &pos
	}

	next := change.Apply(current)
	if err := next.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !input.ClearTeam && input.TeamID != nil {
		t, err := requireTeam(ctx, s.teamRepo, *input.TeamID)
		if err != nil {
			return player.Player{}, err
		}
		next.TeamName = t.Name
	}

	updated, err := s.playerRepo.Update(ctx, next)
	if err != nil {
		return player.Player{}, storeFailure("update player", err)
	}
	return updated, nil
}

// Delete removes the player together with its match events.
func (s *PlayerService) Delete(ctx context.Context, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if playerID <= 0 {
		return fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return storeFailure("delete player", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return nil
}

func requireTeam(ctx context.Context, repo team.Repository, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, storeFailure("get team", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}
