// Package user implements registration, authentication, profile access and
// Telegram linkage for accounts.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/config"
	"github.com/plantracker/plantracker-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetTelegramChatID(ctx context.Context, userID uuid.UUID, chatID *string) error
}

// jwtManager defines the token management interface needed by the user service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// emailVerifier validates an email address and returns its normalized form.
type emailVerifier interface {
	Verify(ctx context.Context, email string) (string, error)
}

// Service implements user operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	jwt      jwtManager
	verifier emailVerifier
	cfg      config.AuthConfig
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	jwt jwtManager,
	verifier emailVerifier,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		jwt:      jwt,
		verifier: verifier,
		cfg:      cfg,
	}
}

// ValidateToken resolves a bearer token to a user ID. Used by the auth
// middleware.
func (s *Service) ValidateToken(token string) (uuid.UUID, error) {
	return s.jwt.ValidateAccessToken(token)
}
