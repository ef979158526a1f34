package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/club-dashboard/internal/config"
	"github.com/riskibarqy/club-dashboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/riskibarqy/club-dashboard/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup
// closes the live feed and every store connection; call it after Shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closers, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		runClosers(closers, logger)
		return nil, nil, err
	}

	handler, hub, err := buildHandler(cfg, repos, logger)
	if err != nil {
		runClosers(closers, logger)
		return nil, nil, err
	}
	closers = append(closers, func() error {
		hub.Close()
		return nil
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, hub, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() {
		// Hub first so subscribers get a close frame before stores go away.
		for i, j := 0, len(closers)-1; i < j; i, j = i+1, j-1 {
			closers[i], closers[j] = closers[j], closers[i]
		}
		runClosers(closers, logger)
	}
	return server, cleanup, nil
}

func buildHandler(cfg config.Config, repos repositories, logger *logging.Logger) (*httpapi.Handler, *httpapi.LiveHub, error) {
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams)
	teamSvc := usecase.NewTeamService(repos.teams, repos.matches, repos.clocks, logger)
	lineupSvc := usecase.NewLineupService(repos.teams, repos.players, repos.lineups, logger)
	drawSvc := usecase.NewDrawService(repos.players, repos.draws, cfg.DrawTeamNamePrefix, logger)
	clockSvc := usecase.NewClockService(repos.matches, repos.clocks, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.events, repos.teams, repos.players, logger)

	hub, err := httpapi.NewLiveHub(matchSvc, cfg.CORSAllowedOrigins, cfg.LiveBroadcastWorkers, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build live hub: %w", err)
	}
	matchSvc.SetPublisher(hub)
	matchSvc.SetMinuteProvider(clockSvc)

	handler := httpapi.NewHandler(playerSvc, teamSvc, lineupSvc, drawSvc, matchSvc, clockSvc, logger)
	return handler, hub, nil
}

func runClosers(closers []func() error, logger *logging.Logger) {
	var errs []error
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn("release resources failed", "error", err)
	}
}
