package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByTeam(ctx context.Context, teamID int64) (Lineup, bool, error)
	Upsert(ctx context.Context, l Lineup) (Lineup, error)
}
