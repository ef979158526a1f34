package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	items, err := h.matchService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list matches failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchSummariesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.fail(ctx, w, "get match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(ctx, detail))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TeamAID:     req.TeamAID,
		TeamBID:     req.TeamBID,
		Stage:       req.Stage,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		h.fail(ctx, w, "create match failed", err, "team_a_id", req.TeamAID, "team_b_id", req.TeamBID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateMatches")
	defer span.End()

	var req generateMatchesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.Generate(ctx, req.TeamIDs)
	if err != nil {
		h.fail(ctx, w, "generate matches failed", err, "team_count", len(req.TeamIDs))
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchesToDTO(items))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	fields, err := decodeJSONFields(r, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Update(ctx, usecase.UpdateMatchInput{
		MatchID:       matchID,
		Status:        req.Status,
		Stage:         req.Stage,
		ClearStage:    fields.cleared("stage"),
		ScheduledAt:   scheduledAt,
		ClearSchedule: fields.cleared("scheduledAt"),
	})
	if err != nil {
		h.fail(ctx, w, "update match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

// AddMatchEvent appends an event. A STAR for the current star player removes
// it instead, in which case event is null and removed is true.
func (h *Handler) AddMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchEvent")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.AddEvent(ctx, usecase.AddEventInput{
		MatchID:  matchID,
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
		Type:     req.Type,
		Minute:   req.Minute,
	})
	if err != nil {
		h.fail(ctx, w, "add match event failed", err, "match_id", matchID, "type", req.Type)
		return
	}

	// The stored change is already committed; a failed reload only costs the
	// scoreboard in the response.
	out := addEventDTO{Removed: result.Removed}
	if result.Event != nil {
		e := eventToDTO(*result.Event)
		out.Event = &e
	}
	detail, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "reload scoreboard after event failed", "match_id", matchID, "error", err)
		out.Scoreboard = scoreboardToDTO(match.Scoreboard{MatchID: matchID})
	} else {
		out.Scoreboard = scoreboardToDTO(detail.Scoreboard)
	}

	status := http.StatusCreated
	if result.Removed {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, out)
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID, err := pathID(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.DeleteEvent(ctx, matchID, eventID); err != nil {
		h.fail(ctx, w, "delete match event failed", err, "match_id", matchID, "event_id", eventID)
		return
	}

	writeNoContent(w)
}

func parseScheduledAt(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduledAt must be an RFC3339 timestamp, got %q", usecase.ErrInvalidInput, value)
	}
	at = at.UTC()
	return &at, nil
}
