package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// Timer runs one timer action against an owned activity. The state transition
// and its persistence commit first; the Telegram notification (when the
// transition produced an event and the user has a linked chat) goes out
// afterwards on a detached goroutine and can never abort the transition.
func (s *Service) Timer(ctx context.Context, activityID uuid.UUID, action string) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	parsed, err := domain.ParseTimerAction(action)
	if err != nil {
		return nil, err
	}

	var (
		activity *domain.Activity
		event    *domain.TimerEvent
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.activities.GetOwned(txCtx, userID, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}

		next, ev, err := a.Timer.Apply(parsed, s.now())
		if err != nil {
			return err
		}

		if err := s.activities.UpdateTimer(txCtx, userID, activityID, next); err != nil {
			return fmt.Errorf("persist timer: %w", err)
		}

		a.Timer = next
		activity, event = a, ev
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("activity.Timer %s: %w", action, err)
	}

	if event != nil {
		s.notifyTimerEvent(ctx, userID, activity.Title, *event)
	}

	return activity, nil
}

// notifyTimerEvent fires the Telegram message for a committed transition.
// Failures are logged and swallowed.
func (s *Service) notifyTimerEvent(ctx context.Context, userID uuid.UUID, title string, event domain.TimerEvent) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "timer notification skipped: user lookup failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return
	}
	if !user.HasTelegram() {
		return
	}

	chatID := *user.TelegramChatID
	text := event.Message(title)
	requestID := ctxutil.RequestIDFromCtx(ctx)

	go func() {
		// Detached from the request context so a client disconnect does not
		// cancel the delivery.
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendMessage(notifyCtx, chatID, text); err != nil {
			s.log.Warn("timer notification failed",
				slog.String("user_id", userID.String()),
				slog.String("request_id", requestID),
				slog.String("error", err.Error()))
		}
	}()
}
