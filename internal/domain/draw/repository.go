package draw

import (
	"context"

	"github.com/riskibarqy/club-dashboard/internal/domain/team"
)

// Repository persists a draw result.
type Repository interface {
	// Apply finds or creates one team per assignment by name and moves the
	// listed players onto it. Either every assignment is stored or none is.
	// Returned teams follow the order of assignments.
	Apply(ctx context.Context, assignments []Assignment) ([]team.Team, error)
}
