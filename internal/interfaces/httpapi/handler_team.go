package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list teams failed", err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.fail(ctx, w, "get team failed", err, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:          req.Name,
		Color:         req.Color,
		LineCount:     req.LineCount,
		Formation:     req.Formation,
		ReservesCount: req.ReservesCount,
	})
	if err != nil {
		h.fail(ctx, w, "create team failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, usecase.UpdateTeamInput{
		TeamID:        teamID,
		Name:          req.Name,
		Color:         req.Color,
		LineCount:     req.LineCount,
		Formation:     req.Formation,
		ReservesCount: req.ReservesCount,
	})
	if err != nil {
		h.fail(ctx, w, "update team failed", err, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.fail(ctx, w, "delete team failed", err, "team_id", teamID)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Get(ctx, teamID)
	if err != nil {
		h.fail(ctx, w, "get lineup failed", err, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveLineupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slots := make(map[string]int64, len(req.Slots))
	for slot, playerID := range req.Slots {
		if playerID == nil {
			continue
		}
		if *playerID <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: slot %s has invalid player id %d", usecase.ErrInvalidInput, slot, *playerID))
			return
		}
		slots[slot] = *playerID
	}

	item, err := h.lineupService.Save(ctx, usecase.SaveLineupInput{TeamID: teamID, Slots: slots})
	if err != nil {
		h.fail(ctx, w, "save lineup failed", err, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}
