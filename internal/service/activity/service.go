// Package activity orchestrates the activity aggregate: CRUD, tag set
// resolution, the timer state machine and timer-transition notifications.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

// activityRepo defines the repository interface needed by the activity service.
// Every lookup is ownership-scoped; there is no unscoped get.
type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetOwned(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error)
	ListOwned(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) ([]domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	UpdateTimer(ctx context.Context, userID, activityID uuid.UUID, state domain.TimerState) error
	ReplaceTags(ctx context.Context, activityID uuid.UUID, tagIDs []uuid.UUID) error
	Delete(ctx context.Context, userID, activityID uuid.UUID) error
}

// tagResolver maps tag names to tags, creating missing ones.
type tagResolver interface {
	Resolve(ctx context.Context, names []string) ([]domain.Tag, error)
}

// userRepo provides the notification-channel lookup for timer events.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// notifier delivers a message to a Telegram chat.
type notifier interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const notifyTimeout = 5 * time.Second

// Service implements activity operations.
type Service struct {
	log        *slog.Logger
	activities activityRepo
	tags       tagResolver
	users      userRepo
	notifier   notifier
	tx         txManager

	now func() time.Time
}

// NewService creates a new activity service instance.
func NewService(
	logger *slog.Logger,
	activities activityRepo,
	tags tagResolver,
	users userRepo,
	n notifier,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "activity"),
		activities: activities,
		tags:       tags,
		users:      users,
		notifier:   n,
		tx:         tx,
		now:        time.Now,
	}
}
