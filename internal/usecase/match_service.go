package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type CreateMatchInput struct {
	TeamAID     int64
	TeamBID     int64
	Stage       *string
	ScheduledAt *time.Time
}

type UpdateMatchInput struct {
	MatchID       int64
	Status        *string
	Stage         *string
	ClearStage    bool
	ScheduledAt   *time.Time
	ClearSchedule bool
}

type AddEventInput struct {
	MatchID  int64
	TeamID   int64
	PlayerID int64
	Type     string
	Minute   *int
}

// AddEventResult holds the stored event, or Removed when a STAR toggled off.
type AddEventResult struct {
	Event   *match.Event
	Removed bool
}

type MatchSummary struct {
	Match  match.Match
	ScoreA int
	ScoreB int
}

type MatchDetail struct {
	Match      match.Match
	RosterA    []player.Player
	RosterB    []player.Player
	Events     []match.Event
	Scoreboard match.Scoreboard
}

// ScoreboardUpdate is pushed to live subscribers after every event change.
type ScoreboardUpdate struct {
	Match          match.Match
	Scoreboard     match.Scoreboard
	Events         []match.Event
	Event          *match.Event
	Removed        bool
	DeletedEventID int64
}

type ScoreboardPublisher interface {
	PublishScoreboard(ctx context.Context, update ScoreboardUpdate)
}

type matchMinuteProvider interface {
	CurrentMinute(ctx context.Context, matchID int64) (int, bool, error)
}

type MatchService struct {
	matchRepo  match.Repository
	eventRepo  match.EventRepository
	teamRepo   team.Repository
	playerRepo player.Repository
	minutes    matchMinuteProvider
	publisher  ScoreboardPublisher
	shuffler   draw.Shuffler
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		shuffler:   draw.RandomShuffler{},
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) SetPublisher(publisher ScoreboardPublisher) {
	s.publisher = publisher
}

// SetMinuteProvider lets new events without a minute take the match clock minute.
func (s *MatchService) SetMinuteProvider(provider matchMinuteProvider) {
	s.minutes = provider
}

func (s *MatchService) SetShuffler(shuffler draw.Shuffler) {
	if shuffler != nil {
		s.shuffler = shuffler
	}
}

func (s *MatchService) List(ctx context.Context) ([]MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, storeFailure("list matches", err)
	}
	if len(matches) == 0 {
		return []MatchSummary{}, nil
	}

	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	eventsByMatch, err := s.eventRepo.ListByMatches(ctx, ids)
	if err != nil {
		return nil, storeFailure("list match events", err)
	}

	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		board := match.DeriveScoreboard(m, eventsByMatch[m.ID])
		out = append(out, MatchSummary{Match: m, ScoreA: board.ScoreA, ScoreB: board.ScoreB})
	}
	return out, nil
}

// Get loads the match with both current rosters and its full event log.
func (s *MatchService) Get(ctx context.Context, matchID int64) (MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", attribute.Int64("match.id", matchID))
	defer span.End()

	m, err := s.requireMatch(ctx, matchID)
	if err != nil {
		return MatchDetail{}, err
	}

	detail := MatchDetail{Match: m}
	loads := pool.New().WithContext(ctx).WithCancelOnError()
	loads.Go(func(ctx context.Context) error {
		roster, err := s.playerRepo.List(ctx, player.Filter{TeamID: &m.TeamAID})
		if err != nil {
			return storeFailure("list team a roster", err)
		}
		detail.RosterA = roster
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		roster, err := s.playerRepo.List(ctx, player.Filter{TeamID: &m.TeamBID})
		if err != nil {
			return storeFailure("list team b roster", err)
		}
		detail.RosterB = roster
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		events, err := s.eventRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return storeFailure("list match events", err)
		}
		detail.Events = events
		return nil
	})
	if err := loads.Wait(); err != nil {
		return MatchDetail{}, err
	}

	detail.Scoreboard = match.DeriveScoreboard(m, detail.Events)
	return detail, nil
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	item := match.Match{
		TeamAID:   input.TeamAID,
		TeamBID:   input.TeamBID,
		Status:    match.StatusScheduled,
		CreatedAt: s.now().UTC(),
	}
	if input.Stage != nil {
		stage, err := match.ParseStage(*input.Stage)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		item.Stage = &stage
	}
	if input.ScheduledAt != nil {
		at := input.ScheduledAt.UTC()
		item.ScheduledAt = &at
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	teamA, err := requireTeam(ctx, s.teamRepo, item.TeamAID)
	if err != nil {
		return match.Match{}, err
	}
	teamB, err := requireTeam(ctx, s.teamRepo, item.TeamBID)
	if err != nil {
		return match.Match{}, err
	}
	item.TeamAName, item.TeamBName = teamA.Name, teamB.Name

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, storeFailure("create match", err)
	}
	return created, nil
}

// Generate shuffles teamIDs and pairs neighbours into new matches. With an
// odd count the last team after shuffling sits out.
func (s *MatchService) Generate(ctx context.Context, teamIDs []int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Generate", attribute.Int("match.team_count", len(teamIDs)))
	defer span.End()

	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: at least 2 team ids are required", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate team id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, storeFailure("get teams", err)
	}
	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	for _, id := range teamIDs {
		if _, ok := names[id]; !ok {
			return nil, fmt.Errorf("%w: team=%d", ErrNotFound, id)
		}
	}

	order := slices.Clone(teamIDs)
	s.shuffler.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	now := s.now().UTC()
	pairs := make([]match.Match, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		pairs = append(pairs, match.Match{
			TeamAID:   order[i],
			TeamBID:   order[i+1],
			TeamAName: names[order[i]],
			TeamBName: names[order[i+1]],
			Status:    match.StatusScheduled,
			CreatedAt: now,
		})
	}

	created, err := s.matchRepo.CreateMany(ctx, pairs)
	if err != nil {
		return nil, storeFailure("create matches", err)
	}
	s.logger.InfoContext(ctx, "matches generated", "teams", len(teamIDs), "matches", len(created))
	return created, nil
}

func (s *MatchService) Update(ctx context.Context, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update", attribute.Int64("match.id", input.MatchID))
	defer span.End()

	current, err := s.requireMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}

	change := match.Update{
		ClearStage:    input.ClearStage,
		ScheduledAt:   input.ScheduledAt,
		ClearSchedule: input.ClearSchedule,
	}
	if input.Status != nil {
		status, err := match.ParseStatus(*input.Status)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		change.Status = &status
	}
	if input.Stage != nil && !input.ClearStage {
		stage, err := match.ParseStage(*input.Stage)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		change.Stage = &stage
	}

	updated, err := s.matchRepo.Update(ctx, change.Apply(current))
	if err != nil {
		return match.Match{}, storeFailure("update match", err)
	}
	return updated, nil
}

// AddEvent appends to the match log. A STAR replaces the current holder, or
// is removed when the same player already holds it.
func (s *MatchService) AddEvent(ctx context.Context, input AddEventInput) (AddEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddEvent",
		attribute.Int64("match.id", input.MatchID),
		attribute.String("event.type", input.Type),
	)
	defer span.End()

	eventType, err := match.ParseEventType(input.Type)
	if err != nil {
		return AddEventResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	event := match.Event{
		MatchID:   input.MatchID,
		TeamID:    input.TeamID,
		PlayerID:  input.PlayerID,
		Type:      eventType,
		Minute:    input.Minute,
		CreatedAt: s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return AddEventResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, err := s.requireMatch(ctx, input.MatchID)
	if err != nil {
		return AddEventResult{}, err
	}
	if !m.HasTeam(input.TeamID) {
		return AddEventResult{}, fmt.Errorf("%w: team %d does not play match %d", ErrInvalidInput, input.TeamID, input.MatchID)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return AddEventResult{}, storeFailure("get player", err)
	}
	if !exists {
		return AddEventResult{}, fmt.Errorf("%w: player=%d", ErrNotFound, input.PlayerID)
	}
	event.PlayerName = p.Name

	if event.Minute == nil && s.minutes != nil {
		minute, ok, err := s.minutes.CurrentMinute(ctx, m.ID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "match clock unavailable, storing event without minute", "match_id", m.ID, "error", err)
		case ok:
			event.Minute = &minute
		}
	}

	var result AddEventResult
	if eventType == match.EventStar {
		stored, removed, err := s.eventRepo.ToggleStar(ctx, event)
		if err != nil {
			return AddEventResult{}, storeFailure("toggle star", err)
		}
		result.Removed = removed
		if !removed {
			result.Event = &stored
		}
	} else {
		stored, err := s.eventRepo.Append(ctx, event)
		if err != nil {
			return AddEventResult{}, storeFailure("append event", err)
		}
		result.Event = &stored
	}

	s.publish(ctx, m, ScoreboardUpdate{Event: result.Event, Removed: result.Removed})
	return result, nil
}

// DeleteEvent removes one event, only if it belongs to matchID.
func (s *MatchService) DeleteEvent(ctx context.Context, matchID, eventID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteEvent", attribute.Int64("match.id", matchID))
	defer span.End()

	if eventID <= 0 {
		return fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}
	m, err := s.requireMatch(ctx, matchID)
	if err != nil {
		return err
	}

	deleted, err := s.eventRepo.Delete(ctx, matchID, eventID)
	if err != nil {
		return storeFailure("delete event", err)
	}
	if !deleted {
		return fmt.Errorf("%w: event=%d match=%d", ErrNotFound, eventID, matchID)
	}

	s.publish(ctx, m, ScoreboardUpdate{DeletedEventID: eventID})
	return nil
}

func (s *MatchService) requireMatch(ctx context.Context, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, storeFailure("get match", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return m, nil
}

// publish is best effort; the event change is already stored.
func (s *MatchService) publish(ctx context.Context, m match.Match, update ScoreboardUpdate) {
	if s.publisher == nil {
		return
	}
	events, err := s.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "skip live scoreboard push", "match_id", m.ID, "error", err)
		return
	}
	update.Match = m
	update.Events = events
	update.Scoreboard = match.DeriveScoreboard(m, events)
	s.publisher.PublishScoreboard(ctx, update)
}
