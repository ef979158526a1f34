package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SaveLineupInput struct {
	TeamID int64
	Slots  map[string]int64
}

type LineupService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewLineupService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the team lineup. It is a side-effecting read: slots pointing at
// players who left the team are emptied and the repaired lineup is stored.
func (s *LineupService) Get(ctx context.Context, teamID int64) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get", attribute.Int64("team.id", teamID))
	defer span.End()

	if _, err := requireTeam(ctx, s.teamRepo, teamID); err != nil {
		return lineup.Lineup{}, err
	}

	current, exists, err := s.lineupRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return lineup.Lineup{}, storeFailure("get lineup", err)
	}
	if !exists {
		return lineup.New(teamID), nil
	}

	members, err := s.teamMembers(ctx, teamID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	repaired, changed := current.Repair(func(playerID int64) bool {
		_, ok := members[playerID]
		return ok
	})
	if !changed {
		return current, nil
	}

	repaired.UpdatedAt = s.now().UTC()
	stored, err := s.lineupRepo.Upsert(ctx, repaired)
	if err != nil {
		return lineup.Lineup{}, storeFailure("repair lineup", err)
	}
	s.logger.InfoContext(ctx, "lineup repaired",
		"team_id", teamID,
		"removed_slots", len(current.Slots)-len(repaired.Slots),
	)
	return stored, nil
}

func (s *LineupService) Save(ctx context.Context, input SaveLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Save", attribute.Int64("team.id", input.TeamID))
	defer span.End()

	if _, err := requireTeam(ctx, s.teamRepo, input.TeamID); err != nil {
		return lineup.Lineup{}, err
	}

	next := lineup.New(input.TeamID)
	for slot, playerID := range input.Slots {
		next.Slots[lineup.Slot(slot)] = playerID
	}
	if err := next.Validate(); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	members, err := s.teamMembers(ctx, input.TeamID)
	if err != nil {
		return lineup.Lineup{}, err
	}
	for slot, playerID := range next.Slots {
		if _, ok := members[playerID]; !ok {
			return lineup.Lineup{}, fmt.Errorf("%w: player %d in slot %s is not on team %d", ErrInvalidInput, playerID, slot, input.TeamID)
		}
	}

	next.UpdatedAt = s.now().UTC()
	stored, err := s.lineupRepo.Upsert(ctx, next)
	if err != nil {
		return lineup.Lineup{}, storeFailure("save lineup", err)
	}
	return stored, nil
}

func (s *LineupService) teamMembers(ctx context.Context, teamID int64) (map[int64]struct{}, error) {
	players, err := s.playerRepo.List(ctx, player.Filter{TeamID: &teamID})
	if err != nil {
		return nil, storeFailure("list team players", err)
	}
	out := make(map[int64]struct{}, len(players))
	for _, p := range players {
		out[p.ID] = struct{}{}
	}
	return out, nil
}
