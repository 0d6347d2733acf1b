package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

// LoginWithPassword authenticates a user and returns a signed access token.
// Returns ErrUnauthorized if the email is unknown, the password is wrong,
// or the account is inactive.
func (s *Service) LoginWithPassword(ctx context.Context, input LoginInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("user.LoginWithPassword get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	if !user.IsActive {
		return "", domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("user.LoginWithPassword generate token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return token, nil
}
