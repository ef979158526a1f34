package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	Create(ctx context.Context, m Match) (Match, error)
	// CreateMany inserts all matches or none.
	CreateMany(ctx context.Context, matches []Match) ([]Match, error)
	Update(ctx context.Context, m Match) (Match, error)
}

// EventRepository stores the append-only event log of a match.
type EventRepository interface {
	// ListByMatch returns events ordered by creation time, then id.
	ListByMatch(ctx context.Context, matchID int64) ([]Event, error)
	ListByMatches(ctx context.Context, matchIDs []int64) (map[int64][]Event, error)
	Append(ctx context.Context, e Event) (Event, error)
	// Delete removes the event only if it belongs to matchID.
	Delete(ctx context.Context, matchID, eventID int64) (bool, error)
	// ToggleStar atomically replaces the STAR of the match with e, or removes
	// it when e.PlayerID already holds it. removed reports the latter case.
	ToggleStar(ctx context.Context, e Event) (stored Event, removed bool, err error)
}
