package user

import "github.com/plantracker/plantracker-backend/internal/domain"

const minPasswordLength = 8

// RegisterInput holds parameters for the Register operation.
type RegisterInput struct {
	Email    string
	Password string
}

// Validate validates the register input. Email syntax is checked separately
// by the email verifier.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{
			Field: "password", Message: "Password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the LoginWithPassword operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LinkTelegramInput holds parameters for the LinkTelegram operation.
type LinkTelegramInput struct {
	ChatID string
}

// Validate validates the link input.
func (i LinkTelegramInput) Validate() error {
	if i.ChatID == "" {
		return domain.NewValidationError("chat_id", "required")
	}
	return nil
}
