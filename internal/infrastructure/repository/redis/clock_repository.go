package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
)

const (
	defaultKeyPrefix = "club:clock:"
	// Clocks outlive any realistic match day and then expire on their own.
	defaultClockTTL = 72 * time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// clockSnapshot is the stored JSON form of a clock. StartedAt is absolute, so a
// running clock keeps counting across process restarts.
type clockSnapshot struct {
	MatchID     int64  `json:"match_id"`
	Half        int    `json:"half"`
	Running     bool   `json:"running"`
	BaseElapsed int64  `json:"base_elapsed_ms"`
	StartedAt   *int64 `json:"started_at_ms,omitempty"`
	FullTime    bool   `json:"full_time"`
}

type ClockRepository struct {
	client  *goredis.Client
	breaker *resilience.CircuitBreaker
	prefix  string
	ttl     time.Duration
}

func NewClockRepository(client *goredis.Client, breaker *resilience.CircuitBreaker) *ClockRepository {
	return &ClockRepository{
		client:  client,
		breaker: breaker,
		prefix:  defaultKeyPrefix,
		ttl:     defaultClockTTL,
	}
}

func (r *ClockRepository) Get(ctx context.Context, matchID int64) (clock.State, bool, error) {
	var raw []byte
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		v, err := r.client.Get(ctx, r.key(matchID)).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		raw = v
		return err
	})
	if err != nil {
		return clock.State{}, false, fmt.Errorf("get clock match=%d: %w", matchID, err)
	}
	if raw == nil {
		return clock.State{}, false, nil
	}

	s, err := decodeClock(raw)
	if err != nil {
		return clock.State{}, false, fmt.Errorf("decode clock match=%d: %w", matchID, err)
	}
	return s, true, nil
}

func (r *ClockRepository) Save(ctx context.Context, s clock.State) error {
	raw, err := encodeClock(s)
	if err != nil {
		return fmt.Errorf("encode clock match=%d: %w", s.MatchID, err)
	}

	err = r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.client.Set(ctx, r.key(s.MatchID), raw, r.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("save clock match=%d: %w", s.MatchID, err)
	}
	return nil
}

func (r *ClockRepository) Delete(ctx context.Context, matchID int64) error {
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.client.Del(ctx, r.key(matchID)).Err()
	})
	if err != nil {
		return fmt.Errorf("delete clock match=%d: %w", matchID, err)
	}
	return nil
}

func (r *ClockRepository) key(matchID int64) string {
	return r.prefix + strconv.FormatInt(matchID, 10)
}

func encodeClock(s clock.State) ([]byte, error) {
	snap := clockSnapshot{
		MatchID:     s.MatchID,
		Half:        s.Half,
		Running:     s.Running,
		BaseElapsed: s.BaseElapsed.Milliseconds(),
		FullTime:    s.FullTime,
	}
	if !s.StartedAt.IsZero() {
		ms := s.StartedAt.UnixMilli()
		snap.StartedAt = &ms
	}
	return json.Marshal(snap)
}

func decodeClock(raw []byte) (clock.State, error) {
	var snap clockSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return clock.State{}, err
	}
	if snap.MatchID <= 0 || snap.Half < 1 || snap.Half > clock.Halves {
		return clock.State{}, fmt.Errorf("invalid clock snapshot: match=%d half=%d", snap.MatchID, snap.Half)
	}

	s := clock.State{
		MatchID:     snap.MatchID,
		Half:        snap.Half,
		Running:     snap.Running,
		BaseElapsed: time.Duration(snap.BaseElapsed) * time.Millisecond,
		FullTime:    snap.FullTime,
	}
	if snap.StartedAt != nil {
		s.StartedAt = time.UnixMilli(*snap.StartedAt).UTC()
	}
	return s, nil
}
