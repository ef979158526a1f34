package clock

import (
	"errors"
	"time"
)

const (
	HalfDuration = 20 * time.Minute
	Halves       = 2
	MaxMinute    = Halves * int(HalfDuration/time.Minute)
)

var ErrFullTime = errors.New("match clock is at full time")

// State is the authoritative two-half clock of one match. While Running,
// elapsed time is BaseElapsed plus the time since StartedAt.
type State struct {
	MatchID     int64
	Half        int
	Running     bool
	BaseElapsed time.Duration
	StartedAt   time.Time
	FullTime    bool
}

func New(matchID int64) State {
	return State{MatchID: matchID, Half: 1}
}

// Elapsed is the time played in the current half, clamped to [0, HalfDuration].
func (s State) Elapsed(now time.Time) time.Duration {
	elapsed := s.BaseElapsed
	if s.Running && !s.StartedAt.IsZero() {
		elapsed += now.Sub(s.StartedAt)
	}
	return min(max(elapsed, 0), HalfDuration)
}

// Minute is the absolute match minute used to stamp events.
func (s State) Minute(now time.Time) int {
	if s.FullTime {
		return MaxMinute
	}
	half := min(max(s.Half, 1), Halves)
	minute := (half-1)*int(HalfDuration/time.Minute) + int(s.Elapsed(now)/time.Minute)
	return min(minute, MaxMinute)
}

// Started reports whether the clock has ever run.
func (s State) Started() bool {
	return s.Running || s.BaseElapsed > 0 || s.Half > 1 || s.FullTime
}

func (s State) Start(now time.Time) (State, error) {
	s, _ = s.Tick(now)
	if s.FullTime {
		return s, ErrFullTime
	}
	if s.Running {
		return s, nil
	}
	s.Running = true
	s.StartedAt = now
	return s, nil
}

func (s State) Pause(now time.Time) State {
	s, _ = s.Tick(now)
	if !s.Running {
		return s
	}
	s.BaseElapsed = s.Elapsed(now)
	s.Running = false
	s.StartedAt = time.Time{}
	return s
}

// Tick applies the automatic half transition once a running half has used
// its full duration. changed reports whether the state moved.
func (s State) Tick(now time.Time) (next State, changed bool) {
	if !s.Running || s.Elapsed(now) < HalfDuration {
		return s, false
	}
	return s.advance(), true
}

// EndHalf closes the current half regardless of the time played.
func (s State) EndHalf(_ time.Time) (State, error) {
	if s.FullTime {
		return s, ErrFullTime
	}
	return s.advance(), nil
}

func (s State) advance() State {
	s.Running = false
	s.StartedAt = time.Time{}
	if s.Half < Halves {
		s.Half++
		s.BaseElapsed = 0
		return s
	}
	s.Half = Halves
	s.BaseElapsed = HalfDuration
	s.FullTime = true
	return s
}
