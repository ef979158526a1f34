package match

// Scoreboard is derived from the event log on every read and never stored.
type Scoreboard struct {
	MatchID      int64
	ScoreA       int
	ScoreB       int
	StarPlayerID *int64
	YellowCards  map[int64]int
	RedCards     map[int64]int
}

// DeriveScoreboard counts GOAL events per side and finds the STAR holder.
// Events of other matches are ignored.
func DeriveScoreboard(m Match, events []Event) Scoreboard {
	board := Scoreboard{
		MatchID:     m.ID,
		YellowCards: make(map[int64]int),
		RedCards:    make(map[int64]int),
	}

	for _, e := range events {
		if e.MatchID != m.ID {
			continue
		}
		switch e.Type {
		case EventGoal:
			switch e.TeamID {
			case m.TeamAID:
				board.ScoreA++
			case m.TeamBID:
				board.ScoreB++
			}
		case EventYellow:
			board.YellowCards[e.PlayerID]++
		case EventRed:
			board.RedCards[e.PlayerID]++
		case EventStar:
			playerID := e.PlayerID
			board.StarPlayerID = &playerID
		}
	}
	return board
}

// Score returns the goals for teamID, or zero when the team is not playing.
func (b Scoreboard) Score(m Match, teamID int64) int {
	switch teamID {
	case m.TeamAID:
		return b.ScoreA
	case m.TeamBID:
		return b.ScoreB
	default:
		return 0
	}
}
