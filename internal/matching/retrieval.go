package matching

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

// UserMatches returns the user's current matches enriched with candidate
// profile data, highest score first. The read path is best-effort for
// presentation: a store error yields an empty list, never an error.
func (e *Engine) UserMatches(ctx context.Context, userID uuid.UUID) []models.MatchWithProfile {
	rows, err := e.store.MatchesWithProfiles(ctx, userID)
	if err != nil {
		e.logger.Warn("loading matches failed, returning empty list",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return []models.MatchWithProfile{}
	}
	if rows == nil {
		rows = []models.MatchWithProfile{}
	}

	// The store already orders by score, but the contract is ours to keep.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MatchScore > rows[j].MatchScore
	})
	return rows
}
