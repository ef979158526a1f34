package match

import (
	"fmt"
	"strings"
	"time"
)

// EventType is the closed set of things that can happen to a player in a match.
type EventType string

const (
	EventGoal   EventType = "GOAL"
	EventYellow EventType = "YELLOW"
	EventRed    EventType = "RED"
	EventStar   EventType = "STAR"
)

func ParseEventType(raw string) (EventType, error) {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case EventGoal, EventYellow, EventRed, EventStar:
		return t, nil
	default:
		return "", fmt.Errorf("invalid event type: %q", raw)
	}
}

// Event is immutable once stored; it can only be deleted.
type Event struct {
	ID         int64
	MatchID    int64
	TeamID     int64
	PlayerID   int64
	PlayerName string
	Type       EventType
	Minute     *int
	CreatedAt  time.Time
}

func (e Event) Validate() error {
	if e.MatchID <= 0 {
		return fmt.Errorf("event match id is required")
	}
	if e.TeamID <= 0 {
		return fmt.Errorf("event team id is required")
	}
	if e.PlayerID <= 0 {
		return fmt.Errorf("event player id is required")
	}
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return err
	}
	if e.Minute != nil && *e.Minute < 0 {
		return fmt.Errorf("event minute must not be negative")
	}
	return nil
}

// PlanStarToggle decides how a new STAR for playerID changes the log of one
// match: every existing STAR is deleted, and the new one is inserted unless the
// player already held it.
func PlanStarToggle(existing []Event, playerID int64) (deleteIDs []int64, insert bool) {
	insert = true
	for _, e := range existing {
		if e.Type != EventStar {
			continue
		}
		deleteIDs = append(deleteIDs, e.ID)
		if e.PlayerID == playerID {
			insert = false
		}
	}
	return deleteIDs, insert
}
