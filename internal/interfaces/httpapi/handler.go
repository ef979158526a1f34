package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

type Handler struct {
	playerService *usecase.PlayerService
	teamService   *usecase.TeamService
	lineupService *usecase.LineupService
	drawService   *usecase.DrawService
	matchService  *usecase.MatchService
	clockService  *usecase.ClockService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	lineupService *usecase.LineupService,
	drawService *usecase.DrawService,
	matchService *usecase.MatchService,
	clockService *usecase.ClockService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService: playerService,
		teamService:   teamService,
		lineupService: lineupService,
		drawService:   drawService,
		matchService:  matchService,
		clockService:  clockService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs at Warn for client errors and Error for everything else, then
// writes the mapped error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}
