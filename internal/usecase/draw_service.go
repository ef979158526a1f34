package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type DrawInput struct {
	TeamCount int
	PaidOnly  bool
	Apply     bool
}

type DrawService struct {
	playerRepo player.Repository
	drawRepo   draw.Repository
	shuffler   draw.Shuffler
	namePrefix string
	logger     *logging.Logger
}

func NewDrawService(
	playerRepo player.Repository,
	drawRepo draw.Repository,
	namePrefix string,
	logger *logging.Logger,
) *DrawService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DrawService{
		playerRepo: playerRepo,
		drawRepo:   drawRepo,
		shuffler:   draw.RandomShuffler{},
		namePrefix: namePrefix,
		logger:     logger,
	}
}

// SetShuffler replaces the random source, mainly for deterministic tests.
func (s *DrawService) SetShuffler(shuffler draw.Shuffler) {
	if shuffler != nil {
		s.shuffler = shuffler
	}
}

// Draw splits the club into balanced teams. With Apply the result is stored
// in one step; without it the draw is a preview and nothing changes.
func (s *DrawService) Draw(ctx context.Context, input DrawInput) (draw.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.Draw",
		attribute.Int("draw.team_count", input.TeamCount),
		attribute.Bool("draw.apply", input.Apply),
	)
	defer span.End()

	if input.TeamCount < draw.MinTeamCount {
		return draw.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, draw.ErrTeamCount)
	}

	pool, err := s.playerRepo.List(ctx, player.Filter{PaidOnly: input.PaidOnly})
	if err != nil {
		return draw.Result{}, storeFailure("list draw pool", err)
	}

	result, err := draw.Draw(pool, draw.Options{
		TeamCount:  input.TeamCount,
		PaidOnly:   input.PaidOnly,
		NamePrefix: s.namePrefix,
	}, s.shuffler)
	if err != nil {
		return draw.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !input.Apply {
		return result, nil
	}

	teams, err := s.drawRepo.Apply(ctx, result.Assignments())
	if err != nil {
		return draw.Result{}, storeFailure("apply draw", err)
	}
	if len(teams) != len(result.Teams) {
		return draw.Result{}, storeFailure("apply draw", fmt.Errorf("stored %d teams, expected %d", len(teams), len(result.Teams)))
	}

	for i := range result.Teams {
		teamID := teams[i].ID
		result.Teams[i].TeamID = teamID
		for j := range result.Teams[i].Players {
			result.Teams[i].Players[j].TeamID = &teamID
			result.Teams[i].Players[j].TeamName = teams[i].Name
		}
	}

	s.logger.InfoContext(ctx, "draw applied",
		"team_count", input.TeamCount,
		"paid_only", input.PaidOnly,
		"players", result.Total,
	)
	return result, nil
}
