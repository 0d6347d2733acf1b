package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// Delete removes an owned activity. Join rows cascade; the tags themselves
// survive for reuse by other activities.
func (s *Service) Delete(ctx context.Context, activityID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.activities.Delete(ctx, userID, activityID); err != nil {
		return fmt.Errorf("activity.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "activity deleted",
		slog.String("activity_id", activityID.String()),
		slog.String("user_id", userID.String()))

	return nil
}
