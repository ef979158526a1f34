package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/memory"
	clockmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/clock"
	matchmock "github.com/riskibarqy/club-dashboard/internal/mocks/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

func newMemoryClockService(t *testing.T, now *time.Time) (*ClockService, match.Match) {
	t.Helper()
	store := memory.NewStore()
	store.Load(memory.SeedTeams(), memory.SeedPlayers())
	m, err := store.Matches().Create(t.Context(), match.Match{TeamAID: 1, TeamBID: 2, Status: match.StatusPlaying})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	svc := NewClockService(store.Matches(), store.Clocks(), nil)
	svc.now = func() time.Time { return *now }
	return svc, m
}

func TestClockService_LifecycleAcrossHalves(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	svc, m := newMemoryClockService(t, &now)

	v, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get clock: %v", err)
	}
	if v.State.Half != 1 || v.State.Running || v.Minute != 0 {
		t.Fatalf("unexpected initial clock: %+v", v)
	}
	if _, ok, _ := svc.CurrentMinute(ctx, m.ID); ok {
		t.Fatalf("unstarted clock must not stamp minutes")
	}

	if _, err := svc.Apply(ctx, m.ID, ClockStart); err != nil {
		t.Fatalf("start: %v", err)
	}
	now = now.Add(12 * time.Minute)
	minute, ok, err := svc.CurrentMinute(ctx, m.ID)
	if err != nil || !ok || minute != 12 {
		t.Fatalf("current minute = %d ok=%v err=%v, want 12", minute, ok, err)
	}

	now = now.Add(10 * time.Minute)
	v, err = svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get clock: %v", err)
	}
	if v.State.Half != 2 || v.State.Running || v.Minute != 20 {
		t.Fatalf("first half should have expired into half 2: %+v", v)
	}

	if _, err := svc.Apply(ctx, m.ID, ClockStart); err != nil {
		t.Fatalf("start half 2: %v", err)
	}
	now = now.Add(5 * time.Minute)
	v, err = svc.Apply(ctx, m.ID, ClockPause)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if v.Minute != 25 || v.State.Running {
		t.Fatalf("paused at minute %d running=%v, want 25 stopped", v.Minute, v.State.Running)
	}

	v, err = svc.Apply(ctx, m.ID, ClockEndHalf)
	if err != nil {
		t.Fatalf("end half: %v", err)
	}
	if !v.State.FullTime || v.Minute != clock.MaxMinute {
		t.Fatalf("expected full time at minute 40: %+v", v)
	}

	if _, err := svc.Apply(ctx, m.ID, ClockStart); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("start after full time should be invalid, got %v", err)
	}
}

func TestClockService_UnknownMatchAndAction(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	svc, m := newMemoryClockService(t, &now)

	if _, err := svc.Get(t.Context(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Apply(t.Context(), m.ID, ClockAction("rewind")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClockService_OpenCircuitIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	clockRepo := clockmock.NewRepository(t)
	svc := NewClockService(matchRepo, clockRepo, nil)

	matchRepo.On("GetByID", mock.Anything, int64(3)).Return(match.Match{ID: 3}, true, nil).Once()
	clockRepo.On("Get", mock.Anything, int64(3)).Return(clock.State{}, false, resilience.ErrCircuitOpen).Once()

	_, err := svc.Get(context.Background(), 3)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
