package player

import (
	"fmt"
	"strings"
	"time"
)

// Position is the playing position code stored with each player.
type Position string

const (
	PositionGoalkeeper Position = "GOL"
	PositionDefender   Position = "DEF"
	PositionLeftWing   Position = "ALAE"
	PositionRightWing  Position = "ALAD"
	PositionMidfielder Position = "MEI"
	PositionForward    Position = "ATA"
)

// DrawOrder is the canonical order positions are filled in during a draw.
var DrawOrder = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionLeftWing,
	PositionRightWing,
	PositionMidfielder,
	PositionForward,
}

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionLeftWing:   {},
	PositionRightWing:  {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const MaxNumber = 99

func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
	return pos, nil
}

// Player is a club member. TeamID is nil when the player has no team.
type Player struct {
	ID        int64
	Name      string
	Position  Position
	Paid      bool
	Number    *int
	TeamID    *int64
	TeamName  string
	CreatedAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %q", p.Position)
	}
	if p.Number != nil && (*p.Number < 0 || *p.Number > MaxNumber) {
		return fmt.Errorf("player number must be between 0 and %d", MaxNumber)
	}
	if p.TeamID != nil && *p.TeamID <= 0 {
		return fmt.Errorf("player team id must be positive")
	}
	return nil
}

// OnTeam reports whether the player is currently assigned to teamID.
func (p Player) OnTeam(teamID int64) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}

// Filter narrows List results. Zero value lists everyone.
type Filter struct {
	PaidOnly bool
	TeamID   *int64
}

// Update carries a partial player change. ClearTeam sets the team to null and
// takes precedence over TeamID.
type Update struct {
	Name      *string
	Position  *Position
	Paid      *bool
	Number    *int
	ClearNum  bool
	TeamID    *int64
	ClearTeam bool
}

func (u Update) Apply(p Player) Player {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.Paid != nil {
		p.Paid = *u.Paid
	}
	switch {
	case u.ClearNum:
		p.Number = nil
	case u.Number != nil:
		n := *u.Number
		p.Number = &n
	}
	switch {
	case u.ClearTeam:
		p.TeamID = nil
		p.TeamName = ""
	case u.TeamID != nil:
		id := *u.TeamID
		p.TeamID = &id
	}
	return p
}
