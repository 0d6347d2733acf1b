package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// Update applies a partial update to an owned activity. When Tags is non-nil
// the whole tag set is replaced; field writes and tag replacement commit in
// one transaction.
func (s *Service) Update(ctx context.Context, activityID uuid.UUID, params UpdateInput) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := validateUpdate(params); err != nil {
		return nil, err
	}

	var updated *domain.Activity

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		activity, err := s.activities.GetOwned(txCtx, userID, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}

		if params.Title != nil {
			activity.Title = *params.Title
		}
		if params.Description != nil {
			activity.Description = params.Description
		}
		if params.EndTime != nil {
			activity.EndTime = params.EndTime
		}
		if params.Duration != nil {
			activity.Duration = params.Duration
		}
		if params.ScheduledTime != nil {
			activity.ScheduledTime = params.ScheduledTime
		}

		if err := s.activities.Update(txCtx, activity); err != nil {
			return fmt.Errorf("update activity: %w", err)
		}

		if params.Tags != nil {
			tags, err := s.tags.Resolve(txCtx, params.Tags)
			if err != nil {
				return fmt.Errorf("resolve tags: %w", err)
			}
			ids := make([]uuid.UUID, len(tags))
			for i, t := range tags {
				ids[i] = t.ID
			}
			if err := s.activities.ReplaceTags(txCtx, activity.ID, ids); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
			activity.Tags = tags
		}

		updated = activity
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("activity.Update: %w", err)
	}

	s.log.InfoContext(ctx, "activity updated",
		slog.String("activity_id", activityID.String()),
		slog.String("user_id", userID.String()))

	return updated, nil
}
