package app

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/club-dashboard/internal/config"
	"github.com/riskibarqy/club-dashboard/internal/domain/clock"
	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/lineup"
	"github.com/riskibarqy/club-dashboard/internal/domain/match"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/club-dashboard/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/club-dashboard/internal/platform/logging"
	"github.com/riskibarqy/club-dashboard/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	players player.Repository
	teams   team.Repository
	lineups lineup.Repository
	matches match.Repository
	events  match.EventRepository
	draws   draw.Repository
	clocks  clock.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, []func() error, error) {
	var (
		repos   repositories
		closers []func() error
		// Without Redis the clock lives in process memory for either driver.
		store = memory.NewStore()
	)
	repos.clocks = store.Clocks()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repos, closers, err
		}
		closers = append(closers, db.Close)
		repos.players = postgres.NewPlayerRepository(db)
		repos.teams = postgres.NewTeamRepository(db)
		repos.lineups = postgres.NewLineupRepository(db)
		repos.matches = postgres.NewMatchRepository(db)
		repos.events = postgres.NewEventRepository(db)
		repos.draws = postgres.NewDrawRepository(db)
		logger.Info("store ready", "driver", cfg.StoreDriver, "db", dbNameFromURL(cfg.DBURL))
	default:
		if cfg.MemorySeedEnabled {
			store.Load(memory.SeedTeams(), memory.SeedPlayers())
		}
		repos.players = store.Players()
		repos.teams = store.Teams()
		repos.lineups = store.Lineups()
		repos.matches = store.Matches()
		repos.events = store.Events()
		repos.draws = store.Draws()
		logger.Info("store ready", "driver", config.StoreMemory, "seeded", cfg.MemorySeedEnabled)
	}

	if cfg.CacheEnabled {
		teams := cache.NewTeamCache(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, teams)
		repos.players = cache.NewPlayerRepository(repos.players, teams)
		repos.draws = cache.NewDrawRepository(repos.draws, teams)
	}

	if cfg.RedisEnabled() {
		client, clocks, err := openRedisClock(ctx, cfg)
		if err != nil {
			return repos, closers, err
		}
		closers = append(closers, client.Close)
		repos.clocks = clocks
		logger.Info("match clock store ready", "backend", "redis", "addr", cfg.RedisAddr, "circuit_enabled", cfg.RedisCircuitEnabled)
	} else {
		logger.Info("match clock store ready", "backend", "memory")
	}

	return repos, closers, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func openRedisClock(ctx context.Context, cfg config.Config) (*goredis.Client, *redisrepo.ClockRepository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.RedisTimeout,
		ReadTimeout:  cfg.RedisTimeout,
		WriteTimeout: cfg.RedisTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	breaker := resilience.NewCircuitBreaker(redisCircuitConfig(cfg))
	return client, redisrepo.NewClockRepository(client, breaker), nil
}

func redisCircuitConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.RedisCircuitEnabled,
		FailureThreshold: cfg.RedisCircuitFailureCount,
		OpenTimeout:      cfg.RedisCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.RedisCircuitHalfOpenMaxReq,
	}
}
