package clock

import "context"

// Repository keeps one clock per match.
type Repository interface {
	Get(ctx context.Context, matchID int64) (State, bool, error)
	Save(ctx context.Context, s State) error
	// Delete is a no-op when the match has no clock.
	Delete(ctx context.Context, matchID int64) error
}
