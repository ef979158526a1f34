package httpapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

type playerDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Paid      bool    `json:"paid"`
	Number    *int    `json:"number"`
	TeamID    *int64  `json:"teamId"`
	TeamName  *string `json:"teamName"`
	CreatedAt string  `json:"createdAt"`
}

type teamDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Color         *string `json:"color"`
	LineCount     *int    `json:"lineCount"`
	Formation     *string `json:"formation"`
	ReservesCount *int    `json:"reservesCount"`
	PlayerCount   int     `json:"playerCount"`
	CreatedAt     string  `json:"createdAt"`
}

type lineupDTO struct {
	TeamID    int64             `json:"teamId"`
	Slots     map[string]*int64 `json:"slots"`
	UpdatedAt *string           `json:"updatedAt"`
}

type drawTeamDTO struct {
	Name    string      `json:"name"`
	TeamID  *int64      `json:"teamId"`
	Players []playerDTO `json:"players"`
}

type drawResultDTO struct {
	Teams   []drawTeamDTO `json:"teams"`
	Total   int           `json:"total"`
	Applied bool          `json:"applied"`
}

type matchDTO struct {
	ID          int64   `json:"id"`
	TeamAID     int64   `json:"teamAId"`
	TeamBID     int64   `json:"teamBId"`
	TeamAName   string  `json:"teamAName"`
	TeamBName   string  `json:"teamBName"`
	Status      string  `json:"status"`
	Stage       *string `json:"stage"`
	ScheduledAt *string `json:"scheduledAt"`
	CreatedAt   string  `json:"createdAt"`
}

type matchSummaryDTO struct {
	matchDTO
	ScoreA int `json:"scoreA"`
	ScoreB int `json:"scoreB"`
}

type eventDTO struct {
	ID         int64  `json:"id"`
	MatchID    int64  `json:"matchId"`
	TeamID     int64  `json:"teamId"`
	PlayerID   int64  `json:"playerId"`
	PlayerName string `json:"playerName"`
	Type       string `json:"type"`
	Minute     *int   `json:"minute"`
	CreatedAt  string `json:"createdAt"`
}

type scoreboardDTO struct {
	MatchID      int64          `json:"matchId"`
	ScoreA       int            `json:"scoreA"`
	ScoreB       int            `json:"scoreB"`
	StarPlayerID *int64         `json:"starPlayerId"`
	YellowCards  map[string]int `json:"yellowCards"`
	RedCards     map[string]int `json:"redCards"`
}

type matchDetailDTO struct {
	Match      matchDTO      `json:"match"`
	RosterA    []playerDTO   `json:"rosterA"`
	RosterB    []playerDTO   `json:"rosterB"`
	Events     []eventDTO    `json:"events"`
	Scoreboard scoreboardDTO `json:"scoreboard"`
}

type addEventDTO struct {
	Event      *eventDTO     `json:"event"`
	Removed    bool          `json:"removed"`
	Scoreboard scoreboardDTO `json:"scoreboard"`
}

type clockDTO struct {
	MatchID        int64  `json:"matchId"`
	Half           int    `json:"half"`
	Running        bool   `json:"running"`
	FullTime       bool   `json:"fullTime"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Minute         int    `json:"minute"`
	Display        string `json:"display"`
	At             string `json:"at"`
}

// liveMessageDTO is the frame pushed to websocket subscribers. Seq grows per
// match; a snapshot carries the last seq published before it.
type liveMessageDTO struct {
	Type           string        `json:"type"`
	Seq            int64         `json:"seq"`
	Match          matchDTO      `json:"match"`
	Scoreboard     scoreboardDTO `json:"scoreboard"`
	Events         []eventDTO    `json:"events"`
	Event          *eventDTO     `json:"event,omitempty"`
	Removed        bool          `json:"removed,omitempty"`
	DeletedEventID int64         `json:"deletedEventId,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func playerToDTO(v player.Player) playerDTO {
	out := playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Position:  string(v.Position),
		Paid:      v.Paid,
		Number:    v.Number,
		TeamID:    v.TeamID,
		CreatedAt: formatTime(v.CreatedAt),
	}
	if v.TeamID != nil && v.TeamName != "" {
		name := v.TeamName
		out.TeamName = &name
	}
	return out
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		Name:          v.Name,
		Color:         v.Color,
		LineCount:     v.LineCount,
		Formation:     v.Formation,
		ReservesCount: v.ReservesCount,
		PlayerCount:   v.PlayerCount,
		CreatedAt:     formatTime(v.CreatedAt),
	}
}

// lineupToDTO always lists all eight slots so clients can render empty ones.
func lineupToDTO(v lineup.Lineup) lineupDTO {
	slots := make(map[string]*int64, len(lineup.AllSlots))
	for _, slot := range lineup.AllSlots {
		if playerID, ok := v.Player(slot); ok {
			id := playerID
			slots[string(slot)] = &id
			continue
		}
		slots[string(slot)] = nil
	}
	return lineupDTO{
		TeamID:    v.TeamID,
		Slots:     slots,
		UpdatedAt: formatTimePtr(&v.UpdatedAt),
	}
}

func drawResultToDTO(ctx context.Context, v draw.Result, applied bool) drawResultDTO {
	_, span := startSpan(ctx, "httpapi.drawResultToDTO")
	defer span.End()

	teams := make([]drawTeamDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		item := drawTeamDTO{Name: t.Name, Players: playersToDTO(t.Players)}
		if t.TeamID > 0 {
			id := t.TeamID
			item.TeamID = &id
		}
		teams = append(teams, item)
	}
	return drawResultDTO{Teams: teams, Total: v.Total, Applied: applied}
}

func matchToDTO(v match.Match) matchDTO {
	out := matchDTO{
		ID:          v.ID,
		TeamAID:     v.TeamAID,
		TeamBID:     v.TeamBID,
		TeamAName:   v.TeamAName,
		TeamBName:   v.TeamBName,
		Status:      string(v.Status),
		ScheduledAt: formatTimePtr(v.ScheduledAt),
		CreatedAt:   formatTime(v.CreatedAt),
	}
	if v.Stage != nil {
		stage := string(*v.Stage)
		out.Stage = &stage
	}
	return out
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func matchSummariesToDTO(items []usecase.MatchSummary) []matchSummaryDTO {
	out := make([]matchSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchSummaryDTO{
			matchDTO: matchToDTO(item.Match),
			ScoreA:   item.ScoreA,
			ScoreB:   item.ScoreB,
		})
	}
	return out
}

func eventToDTO(v match.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		MatchID:    v.MatchID,
		TeamID:     v.TeamID,
		PlayerID:   v.PlayerID,
		PlayerName: v.PlayerName,
		Type:       string(v.Type),
		Minute:     v.Minute,
		CreatedAt:  formatTime(v.CreatedAt),
	}
}

func eventsToDTO(items []match.Event) []eventDTO {
	out := make([]eventDTO, 0, len(items))
	for _, e := range items {
		out = append(out, eventToDTO(e))
	}
	return out
}

func scoreboardToDTO(v match.Scoreboard) scoreboardDTO {
	return scoreboardDTO{
		MatchID:      v.MatchID,
		ScoreA:       v.ScoreA,
		ScoreB:       v.ScoreB,
		StarPlayerID: v.StarPlayerID,
		YellowCards:  cardCounts(v.YellowCards),
		RedCards:     cardCounts(v.RedCards),
	}
}

// JSON object keys must be strings.
func cardCounts(in map[int64]int) map[string]int {
	out := make(map[string]int, len(in))
	for playerID, n := range in {
		out[strconv.FormatInt(playerID, 10)] = n
	}
	return out
}

func matchDetailToDTO(ctx context.Context, v usecase.MatchDetail) matchDetailDTO {
	_, span := startSpan(ctx, "httpapi.matchDetailToDTO")
	defer span.End()

	return matchDetailDTO{
		Match:      matchToDTO(v.Match),
		RosterA:    playersToDTO(v.RosterA),
		RosterB:    playersToDTO(v.RosterB),
		Events:     eventsToDTO(v.Events),
		Scoreboard: scoreboardToDTO(v.Scoreboard),
	}
}

func clockToDTO(v usecase.ClockView) clockDTO {
	elapsed := int64(v.Elapsed / time.Second)
	return clockDTO{
		MatchID:        v.State.MatchID,
		Half:           v.State.Half,
		Running:        v.State.Running,
		FullTime:       v.State.FullTime,
		ElapsedSeconds: elapsed,
		Minute:         v.Minute,
		Display:        formatClock(elapsed),
		At:             v.At.UTC().Format(time.RFC3339Nano),
	}
}

// formatClock renders elapsed seconds as MM:SS.
func formatClock(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func liveMessageFromUpdate(v usecase.ScoreboardUpdate) liveMessageDTO {
	msg := liveMessageDTO{
		Type:           "scoreboard",
		Match:          matchToDTO(v.Match),
		Scoreboard:     scoreboardToDTO(v.Scoreboard),
		Events:         eventsToDTO(v.Events),
		Removed:        v.Removed,
		DeletedEventID: v.DeletedEventID,
	}
	if v.Event != nil {
		e := eventToDTO(*v.Event)
		msg.Event = &e
	}
	return msg
}

func liveSnapshotFromDetail(v usecase.MatchDetail) liveMessageDTO {
	return liveMessageDTO{
		Type:       "snapshot",
		Match:      matchToDTO(v.Match),
		Scoreboard: scoreboardToDTO(v.Scoreboard),
		Events:     eventsToDTO(v.Events),
	}
}
