package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type ClockAction string

const (
	ClockStart   ClockAction = "start"
	ClockPause   ClockAction = "pause"
	ClockEndHalf ClockAction = "end-half"
)

// ClockView is a clock state evaluated at a given instant.
type ClockView struct {
	State   clock.State
	Elapsed time.Duration
	Minute  int
	At      time.Time
}

type ClockService struct {
	matchRepo match.Repository
	clockRepo clock.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewClockService(matchRepo match.Repository, clockRepo clock.Repository, logger *logging.Logger) *ClockService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ClockService{
		matchRepo: matchRepo,
		clockRepo: clockRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the clock, storing any half transition that became due.
func (s *ClockService) Get(ctx context.Context, matchID int64) (ClockView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClockService.Get", attribute.Int64("match.id", matchID))
	defer span.End()

	if err := s.requireMatch(ctx, matchID); err != nil {
		return ClockView{}, err
	}

	now := s.now().UTC()
	state, err := s.load(ctx, matchID, now)
	if err != nil {
		return ClockView{}, err
	}
	return view(state, now), nil
}

func (s *ClockService) Apply(ctx context.Context, matchID int64, action ClockAction) (ClockView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClockService.Apply",
		attribute.Int64("match.id", matchID),
		attribute.String("clock.action", string(action)),
	)
	defer span.End()

	if err := s.requireMatch(ctx, matchID); err != nil {
		return ClockView{}, err
	}

	now := s.now().UTC()
	state, err := s.load(ctx, matchID, now)
	if err != nil {
		return ClockView{}, err
	}

	var next clock.State
	switch action {
	case ClockStart:
		next, err = state.Start(now)
	case ClockPause:
		next = state.Pause(now)
	case ClockEndHalf:
		next, err = state.EndHalf(now)
	default:
		return ClockView{}, fmt.Errorf("%w: unknown clock action %q", ErrInvalidInput, action)
	}
	if errors.Is(err, clock.ErrFullTime) {
		return ClockView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		return ClockView{}, fmt.Errorf("apply clock action: %w", err)
	}

	if err := s.save(ctx, next); err != nil {
		return ClockView{}, err
	}
	s.logger.InfoContext(ctx, "match clock changed",
		"match_id", matchID,
		"action", string(action),
		"half", next.Half,
		"full_time", next.FullTime,
	)
	return view(next, now), nil
}

// CurrentMinute reports the match minute for event stamping. ok is false
// while the clock has never been started.
func (s *ClockService) CurrentMinute(ctx context.Context, matchID int64) (minute int, ok bool, err error) {
	now := s.now().UTC()
	state, exists, err := s.get(ctx, matchID)
	if err != nil || !exists || !state.Started() {
		return 0, false, err
	}
	state, _ = state.Tick(now)
	return state.Minute(now), true, nil
}

func (s *ClockService) requireMatch(ctx context.Context, matchID int64) error {
	if matchID <= 0 {
		return fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return storeFailure("get match", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return nil
}

func (s *ClockService) load(ctx context.Context, matchID int64, now time.Time) (clock.State, error) {
	state, exists, err := s.get(ctx, matchID)
	if err != nil {
		return clock.State{}, err
	}
	if !exists {
		return clock.New(matchID), nil
	}

	next, changed := state.Tick(now)
	if changed {
		if err := s.save(ctx, next); err != nil {
			return clock.State{}, err
		}
	}
	return next, nil
}

func (s *ClockService) get(ctx context.Context, matchID int64) (clock.State, bool, error) {
	state, exists, err := s.clockRepo.Get(ctx, matchID)
	if err != nil {
		return clock.State{}, false, clockStoreFailure("get clock", err)
	}
	return state, exists, nil
}

func (s *ClockService) save(ctx context.Context, state clock.State) error {
	if err := s.clockRepo.Save(ctx, state); err != nil {
		return clockStoreFailure("save clock", err)
	}
	return nil
}

func clockStoreFailure(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
	}
	return storeFailure(op, err)
}

func view(state clock.State, now time.Time) ClockView {
	return ClockView{
		State:   state,
		Elapsed: state.Elapsed(now),
		Minute:  state.Minute(now),
		At:      now,
	}
}
