// Package tag implements standalone tag management (create, list).
// Batch resolution for activity tagging lives in the tag repository and is
// consumed by the activity service.
package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// tagRepo defines the repository interface needed by the tag service.
type tagRepo interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, skip, limit int) ([]domain.Tag, error)
}

// Service implements tag operations.
type Service struct {
	log  *slog.Logger
	tags tagRepo
}

// NewService creates a new tag service instance.
func NewService(logger *slog.Logger, tags tagRepo) *Service {
	return &Service{
		log:  logger.With("service", "tag"),
		tags: tags,
	}
}

// Create inserts a tag with a unique name.
// Returns ErrAlreadyExists if the name is taken. Names are opaque strings:
// empty and whitespace-only names are stored as-is.
func (s *Service) Create(ctx context.Context, name string) (*domain.Tag, error) {
	created, err := s.tags.Create(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("tag.Create: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("tag.Create: %w", err)
	}

	s.log.InfoContext(ctx, "tag created", slog.String("tag_id", created.ID.String()))

	return created, nil
}

// List returns tags ordered by name with offset pagination.
func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.Tag, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	tags, err := s.tags.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("tag.List: %w", err)
	}
	return tags, nil
}
