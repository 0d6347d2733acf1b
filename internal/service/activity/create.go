package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// Create inserts a new activity for the authenticated user. Tag names are
// resolved to tags inside the same transaction, so a referenced name can
// never end up pointing at a missing tag row.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	startTime := s.now()
	if input.StartTime != nil {
		startTime = *input.StartTime
	}

	activity := &domain.Activity{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		StartTime:     startTime,
		EndTime:       input.EndTime,
		Duration:      input.Duration,
		ScheduledTime: input.ScheduledTime,
		Timer:         domain.NewTimerState(),
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tags, err := s.tags.Resolve(txCtx, input.Tags)
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}
		activity.Tags = tags

		if err := s.activities.Create(txCtx, activity); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("activity.Create: %w", err)
	}

	s.log.InfoContext(ctx, "activity created",
		slog.String("activity_id", activity.ID.String()),
		slog.String("user_id", userID.String()))

	return activity, nil
}
