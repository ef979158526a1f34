package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

func (h *Handler) GetMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchClock")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.clockService.Get(ctx, matchID)
	if err != nil {
		h.fail(ctx, w, "get match clock failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clockToDTO(view))
}

func (h *Handler) ApplyMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyMatchClock")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	action := usecase.ClockAction(strings.ToLower(strings.TrimSpace(r.PathValue("action"))))
	switch action {
	case usecase.ClockStart, usecase.ClockPause, usecase.ClockEndHalf:
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown clock action %q", usecase.ErrInvalidInput, action))
		return
	}

	view, err := h.clockService.Apply(ctx, matchID, action)
	if err != nil {
		h.fail(ctx, w, "apply match clock failed", err, "match_id", matchID, "action", action)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clockToDTO(view))
}
