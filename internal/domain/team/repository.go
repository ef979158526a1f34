package team

import (
	"context"
	"errors"
)

// ErrDuplicateName is returned by stores when a team name is already taken.
var ErrDuplicateName = errors.New("team name already exists")

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetByIDs(ctx context.Context, teamIDs []int64) ([]Team, error)
	Create(ctx context.Context, t Team) (Team, error)
	Update(ctx context.Context, t Team) (Team, error)
	// Delete removes the team, clears its players' team reference and drops its lineup.
	Delete(ctx context.Context, teamID int64) (bool, error)
}
