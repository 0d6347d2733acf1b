package activity

import (
	"time"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

const (
	defaultListLimit = 15
	maxListLimit     = 100
	maxTitleLength   = 500
)

// CreateInput holds parameters for the Create operation.
// Tag names are opaque: duplicates collapse, order is preserved.
type CreateInput struct {
	Title         string
	Description   *string
	StartTime     *time.Time
	EndTime       *time.Time
	Duration      *int64
	ScheduledTime *time.Time
	Tags          []string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Duration != nil && *i.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput carries a partial update; nil fields are left untouched.
// Tags != nil replaces the full tag set (empty slice clears it).
type UpdateInput = domain.ActivityUpdateParams

func validateUpdate(p UpdateInput) error {
	var errs []domain.FieldError

	if p.Title != nil {
		if *p.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
		} else if len(*p.Title) > maxTitleLength {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
		}
	}

	if p.Duration != nil && *p.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds parameters for the List operation.
type ListInput struct {
	Tag   *string
	Skip  int
	Limit int
}

// filter normalizes pagination into a repository filter.
func (i ListInput) filter() domain.ActivityFilter {
	if i.Skip < 0 {
		i.Skip = 0
	}
	if i.Limit <= 0 {
		i.Limit = defaultListLimit
	}
	if i.Limit > maxListLimit {
		i.Limit = maxListLimit
	}
	return domain.ActivityFilter{Tag: i.Tag, Skip: i.Skip, Limit: i.Limit}
}
