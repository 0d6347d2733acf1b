package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

// TelegramStatus describes the user's notification-channel linkage.
type TelegramStatus struct {
	IsLinked bool
	ChatID   *string
}

// GetTelegramStatus reports whether the authenticated user has a Telegram
// chat linked.
func (s *Service) GetTelegramStatus(ctx context.Context) (*TelegramStatus, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &TelegramStatus{
		IsLinked: user.HasTelegram(),
		ChatID:   user.TelegramChatID,
	}, nil
}

// LinkTelegram attaches a Telegram chat ID to the authenticated user.
// Re-linking overwrites the previous chat ID.
func (s *Service) LinkTelegram(ctx context.Context, input LinkTelegramInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.users.SetTelegramChatID(ctx, userID, &input.ChatID); err != nil {
		return fmt.Errorf("user.LinkTelegram: %w", err)
	}

	s.log.InfoContext(ctx, "telegram chat linked",
		slog.String("user_id", userID.String()))

	return nil
}

// UnlinkTelegram removes the Telegram linkage.
// Returns a validation error if no chat is linked.
func (s *Service) UnlinkTelegram(ctx context.Context) error {
	user, err := s.Me(ctx)
	if err != nil {
		return err
	}

	if !user.HasTelegram() {
		return domain.NewValidationError("telegram", "Telegram account not linked")
	}

	if err := s.users.SetTelegramChatID(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("user.UnlinkTelegram: %w", err)
	}

	s.log.InfoContext(ctx, "telegram chat unlinked",
		slog.String("user_id", user.ID.String()))

	return nil
}
