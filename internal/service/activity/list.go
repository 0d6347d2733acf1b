package activity

import (
	"context"
	"fmt"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// List returns the user's activities, newest start_time first. Running timers
// are reconciled in memory only, so the response shows current totals without
// a write per listed row.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	activities, err := s.activities.ListOwned(ctx, userID, input.filter())
	if err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}

	now := s.now()
	for i := range activities {
		activities[i].Timer, _ = domain.Reconcile(activities[i].Timer, now)
	}

	return activities, nil
}
