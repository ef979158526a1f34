package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
)

type CreateTeamInput struct {
	Name          string
	Color         *string
	LineCount     *int
	Formation     *string
	ReservesCount *int
}

type UpdateTeamInput struct {
	TeamID        int64
	Name          *string
	Color         *string
	LineCount     *int
	Formation     *string
	ReservesCount *int
}

type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	clockRepo clock.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewTeamService(teamRepo team.Repository, matchRepo match.Repository, clockRepo clock.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		clockRepo: clockRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeFailure("list teams", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID int64) (team.Team, error) {
	return requireTeam(ctx, s.teamRepo, teamID)
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	item := team.Team{
		Name:          strings.TrimSpace(input.Name),
		Color:         trimOptional(input.Color),
		LineCount:     input.LineCount,
		Formation:     trimOptional(input.Formation),
		ReservesCount: input.ReservesCount,
		CreatedAt:     s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, item)
	if errors.Is(err, team.ErrDuplicateName) {
		return team.Team{}, fmt.Errorf("%w: team name %q already exists", ErrConflict, item.Name)
	}
	if err != nil {
		return team.Team{}, storeFailure("create team", err)
	}
	return created, nil
}

func (s *TeamService) Update(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	current, err := requireTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return team.Team{}, err
	}

	next := team.Update{
		Name:          input.Name,
		Color:         trimOptional(input.Color),
		LineCount:     input.LineCount,
		Formation:     trimOptional(input.Formation),
		ReservesCount: input.ReservesCount,
	}.Apply(current)
	if err := next.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.teamRepo.Update(ctx, next)
	if errors.Is(err, team.ErrDuplicateName) {
		return team.Team{}, fmt.Errorf("%w: team name %q already exists", ErrConflict, next.Name)
	}
	if err != nil {
		return team.Team{}, storeFailure("update team", err)
	}
	return updated, nil
}

// Delete removes the team; its players stay in the club without a team. The
// store drops the team's matches and events, and their clocks are cleared
// here since they may live in a separate store.
func (s *TeamService) Delete(ctx context.Context, teamID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if teamID <= 0 {
		return fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return storeFailure("list matches", err)
	}

	deleted, err := s.teamRepo.Delete(ctx, teamID)
	if err != nil {
		return storeFailure("delete team", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	cleared := 0
	for _, m := range matches {
		if m.TeamAID != teamID && m.TeamBID != teamID {
			continue
		}
		// Clocks expire on their own, so a failed delete is only logged.
		if err := s.clockRepo.Delete(ctx, m.ID); err != nil {
			s.logger.WarnContext(ctx, "delete match clock failed", "team_id", teamID, "match_id", m.ID, "error", err)
			continue
		}
		cleared++
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID, "clocks_cleared", cleared)
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	return &out
}
