package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

// CreateDraw previews a draw, or stores it when apply is true. Only paid
// players are drawn unless paidOnly is false.
func (h *Handler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraw")
	defer span.End()

	var req drawRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	paidOnly := true
	if req.PaidOnly != nil {
		paidOnly = *req.PaidOnly
	}

	result, err := h.drawService.Draw(ctx, usecase.DrawInput{
		TeamCount: req.TeamCount,
		PaidOnly:  paidOnly,
		Apply:     req.Apply,
	})
	if err != nil {
		h.fail(ctx, w, "draw teams failed", err, "team_count", req.TeamCount, "apply", req.Apply)
		return
	}

	status := http.StatusOK
	if req.Apply {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, drawResultToDTO(ctx, result, req.Apply))
}
