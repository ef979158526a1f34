package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/club-dashboard/internal/domain/draw"
	"github.com/riskibarqy/club-dashboard/internal/domain/player"
	"github.com/riskibarqy/club-dashboard/internal/domain/team"
	basecache "github.com/riskibarqy/club-dashboard/internal/platform/cache"
)

const (
	teamKeyPrefix = "team:"
	teamListKey   = teamKeyPrefix + "list"
)

// TeamCache holds team reads. Any write that can change a team row or its
// player count drops every team entry.
type TeamCache = basecache.Store[cachedTeams]

func NewTeamCache(ttl time.Duration) *TeamCache {
	return basecache.NewStore[cachedTeams](ttl)
}

type cachedTeams struct {
	items  []team.Team
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *TeamCache
}

func NewTeamRepository(next team.Repository, cache *TeamCache) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) (cachedTeams, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return cachedTeams{}, err
		}
		return cachedTeams{items: append([]team.Team(nil), items...), exists: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), v.items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamKeyPrefix + "id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTeams, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeams{}, err
		}
		return cachedTeams{items: []team.Team{item}, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	if !v.exists || len(v.items) == 0 {
		return team.Team{}, false, nil
	}
	return v.items[0], true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []int64) ([]team.Team, error) {
	return r.next.GetByIDs(ctx, teamIDs)
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Create(ctx, t)
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) (team.Team, error) {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Update(ctx, t)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int64) (bool, error) {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Delete(ctx, teamID)
}

// PlayerRepository reads straight through; its writes move player counts, so
// they drop the team entries.
type PlayerRepository struct {
	player.Repository
	teams *TeamCache
}

func NewPlayerRepository(next player.Repository, teams *TeamCache) *PlayerRepository {
	return &PlayerRepository{Repository: next, teams: teams}
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	defer r.teams.DeletePrefix(ctx, teamKeyPrefix)
	return r.Repository.Create(ctx, p)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (player.Player, error) {
	defer r.teams.DeletePrefix(ctx, teamKeyPrefix)
	return r.Repository.Update(ctx, p)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) (bool, error) {
	defer r.teams.DeletePrefix(ctx, teamKeyPrefix)
	return r.Repository.Delete(ctx, playerID)
}

// DrawRepository drops team entries after a draw, which may create teams and
// always moves players.
type DrawRepository struct {
	next  draw.Repository
	teams *TeamCache
}

func NewDrawRepository(next draw.Repository, teams *TeamCache) *DrawRepository {
	return &DrawRepository{next: next, teams: teams}
}

func (r *DrawRepository) Apply(ctx context.Context, assignments []draw.Assignment) ([]team.Team, error) {
	defer r.teams.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Apply(ctx, assignments)
}
