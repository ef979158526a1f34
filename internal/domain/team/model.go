package team

import (
	"fmt"
	"strings"
	"time"
)

// Team groups players through the players' team reference. The lineup shape
// fields are display hints only.
type Team struct {
	ID            int64
	Name          string
	Color         *string
	LineCount     *int
	Formation     *string
	ReservesCount *int
	PlayerCount   int
	CreatedAt     time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.LineCount != nil && *t.LineCount < 0 {
		return fmt.Errorf("team line count must not be negative")
	}
	if t.ReservesCount != nil && *t.ReservesCount < 0 {
		return fmt.Errorf("team reserves count must not be negative")
	}
	return nil
}

// Update is a partial team change; nil fields are left untouched.
type Update struct {
	Name          *string
	Color         *string
	LineCount     *int
	Formation     *string
	ReservesCount *int
}

func (u Update) Apply(t Team) Team {
	if u.Name != nil {
		t.Name = strings.TrimSpace(*u.Name)
	}
	if u.Color != nil {
		t.Color = u.Color
	}
	if u.LineCount != nil {
		t.LineCount = u.LineCount
	}
	if u.Formation != nil {
		t.Formation = u.Formation
	}
	if u.ReservesCount != nil {
		t.ReservesCount = u.ReservesCount
	}
	return t
}
