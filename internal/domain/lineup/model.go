package lineup

import (
	"fmt"
	"time"
)

// Slot names one of the eight fixed lineup roles.
type Slot string

const (
	SlotGoalkeeper Slot = "goleiro"
	SlotRightWing  Slot = "ala_direito"
	SlotLeftWing   Slot = "ala_esquerdo"
	SlotForward    Slot = "frente"
	SlotDefender   Slot = "zag"
	SlotMidfielder Slot = "meio"
	SlotReserve1   Slot = "reserva1"
	SlotReserve2   Slot = "reserva2"
)

var AllSlots = []Slot{
	SlotGoalkeeper,
	SlotRightWing,
	SlotLeftWing,
	SlotForward,
	SlotDefender,
	SlotMidfielder,
	SlotReserve1,
	SlotReserve2,
}

// Lineup is the single lineup of a team; every slot may be empty.
type Lineup struct {
	TeamID    int64
	Slots     map[Slot]int64
	UpdatedAt time.Time
}

func New(teamID int64) Lineup {
	return Lineup{TeamID: teamID, Slots: make(map[Slot]int64, len(AllSlots))}
}

func (l Lineup) Player(slot Slot) (int64, bool) {
	id, ok := l.Slots[slot]
	return id, ok
}

// Clone returns a copy that does not share the slot map.
func (l Lineup) Clone() Lineup {
	out := l
	out.Slots = make(map[Slot]int64, len(l.Slots))
	for slot, playerID := range l.Slots {
		out.Slots[slot] = playerID
	}
	return out
}

// Validate rejects unknown slots and a player placed in more than one slot.
func (l Lineup) Validate() error {
	if l.TeamID <= 0 {
		return fmt.Errorf("lineup team id is required")
	}

	known := make(map[Slot]struct{}, len(AllSlots))
	for _, slot := range AllSlots {
		known[slot] = struct{}{}
	}

	seen := make(map[int64]Slot, len(l.Slots))
	for _, slot := range AllSlots {
		playerID, ok := l.Slots[slot]
		if !ok {
			continue
		}
		if playerID <= 0 {
			return fmt.Errorf("slot %s has invalid player id %d", slot, playerID)
		}
		if prev, dup := seen[playerID]; dup {
			return fmt.Errorf("player %d is in both %s and %s", playerID, prev, slot)
		}
		seen[playerID] = slot
	}
	for slot := range l.Slots {
		if _, ok := known[slot]; !ok {
			return fmt.Errorf("unknown lineup slot %q", slot)
		}
	}
	return nil
}

// Repair empties every slot whose player is not on the team. It reports
// whether anything was removed; the receiver is left untouched.
func (l Lineup) Repair(onTeam func(playerID int64) bool) (Lineup, bool) {
	out := l.Clone()
	changed := false
	for slot, playerID := range l.Slots {
		if !onTeam(playerID) {
			delete(out.Slots, slot)
			changed = true
		}
	}
	return out, changed
}
