package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// Get returns one owned activity. While the timer is running the elapsed
// window is reconciled into RecordedSeconds and persisted, so the stored
// accumulator keeps pace with reads.
func (s *Service) Get(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	activity, err := s.activities.GetOwned(ctx, userID, activityID)
	if err != nil {
		return nil, fmt.Errorf("activity.Get: %w", err)
	}

	reconciled, delta := domain.Reconcile(activity.Timer, s.now())
	if delta > 0 {
		if err := s.activities.UpdateTimer(ctx, userID, activityID, reconciled); err != nil {
			return nil, fmt.Errorf("activity.Get persist reconcile: %w", err)
		}
	}
	activity.Timer = reconciled

	return activity, nil
}
