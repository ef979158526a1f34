package match

import (
	"fmt"
	"strings"
	"time"
)

// Status is advisory; transitions are not enforced.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
)

type Stage string

const (
	StageGroup        Stage = "group"
	StageRoundOf16    Stage = "round_of_16"
	StageQuarterfinal Stage = "quarterfinal"
	StageSemifinal    Stage = "semifinal"
	StageFinal        Stage = "final"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusScheduled, StatusPlaying, StatusFinished:
		return s, nil
	default:
		return "", fmt.Errorf("invalid match status: %q", raw)
	}
}

func ParseStage(raw string) (Stage, error) {
	switch s := Stage(strings.ToLower(strings.TrimSpace(raw))); s {
	case StageGroup, StageRoundOf16, StageQuarterfinal, StageSemifinal, StageFinal:
		return s, nil
	default:
		return "", fmt.Errorf("invalid match stage: %q", raw)
	}
}

// Match pairs team A and team B. Score attribution follows that order.
type Match struct {
	ID          int64
	TeamAID     int64
	TeamBID     int64
	TeamAName   string
	TeamBName   string
	Status      Status
	Stage       *Stage
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

func (m Match) Validate() error {
	if m.TeamAID <= 0 || m.TeamBID <= 0 {
		return fmt.Errorf("both match teams are required")
	}
	if m.TeamAID == m.TeamBID {
		return fmt.Errorf("a team cannot play itself")
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return err
	}
	if m.Stage != nil {
		if _, err := ParseStage(string(*m.Stage)); err != nil {
			return err
		}
	}
	return nil
}

// HasTeam reports whether teamID plays in the match.
func (m Match) HasTeam(teamID int64) bool {
	return teamID == m.TeamAID || teamID == m.TeamBID
}

// Update is a partial match change. ClearStage and ClearSchedule null the
// corresponding column.
type Update struct {
	Status        *Status
	Stage         *Stage
	ClearStage    bool
	ScheduledAt   *time.Time
	ClearSchedule bool
}

func (u Update) Apply(m Match) Match {
	if u.Status != nil {
		m.Status = *u.Status
	}
	switch {
	case u.ClearStage:
		m.Stage = nil
	case u.Stage != nil:
		stage := *u.Stage
		m.Stage = &stage
	}
	switch {
	case u.ClearSchedule:
		m.ScheduledAt = nil
	case u.ScheduledAt != nil:
		at := u.ScheduledAt.UTC()
		m.ScheduledAt = &at
	}
	return m
}
