package redis

import (
	"errors"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
)

func TestClockSnapshotRoundTrip(t *testing.T) {
	startedAt := time.Date(2026, 5, 2, 19, 30, 15, 250_000_000, time.UTC)
	in := clock.State{
		MatchID:     9,
		Half:        2,
		Running:     true,
		BaseElapsed: 3*time.Minute + 500*time.Millisecond,
		StartedAt:   startedAt,
	}

	raw, err := encodeClock(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeClock(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.StartedAt.Equal(in.StartedAt) {
		t.Fatalf("started_at changed: %v vs %v", out.StartedAt, in.StartedAt)
	}
	out.StartedAt = in.StartedAt
	if out != in {
		t.Fatalf("unexpected clock after round trip:\n got: %+v\nwant: %+v", out, in)
	}

	now := startedAt.Add(2 * time.Minute)
	if out.Minute(now) != in.Minute(now) {
		t.Fatalf("minute drifted after round trip: %d vs %d", out.Minute(now), in.Minute(now))
	}
}

func TestClockSnapshotOmitsUnsetStart(t *testing.T) {
	raw, err := encodeClock(clock.New(4))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := string(raw); got != `{"match_id":4,"half":1,"running":false,"base_elapsed_ms":0,"full_time":false}` {
		t.Fatalf("unexpected snapshot: %s", got)
	}

	out, err := decodeClock(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.StartedAt.IsZero() || out.Started() {
		t.Fatalf("expected a fresh clock, got %+v", out)
	}
}

func TestDecodeClockRejectsBadSnapshot(t *testing.T) {
	for _, raw := range []string{`{"match_id":0,"half":1}`, `{"match_id":3,"half":3}`, `not json`} {
		if _, err := decodeClock([]byte(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestClockRepositoryOpenBreakerSkipsRedis(t *testing.T) {
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})
	breaker.RecordFailure()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	repo := NewClockRepository(client, breaker)

	if _, _, err := repo.Get(t.Context(), 1); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen from Get, got %v", err)
	}
	if err := repo.Save(t.Context(), clock.New(1)); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen from Save, got %v", err)
	}
	if err := repo.Delete(t.Context(), 1); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen from Delete, got %v", err)
	}
	if got := repo.key(12); got != "club:clock:12" {
		t.Fatalf("unexpected key: %s", got)
	}
}
