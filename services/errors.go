package services

import (
	"errors"
	"fmt"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrEmailTaken         = repositories.ErrDuplicate
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrPushDisabled       = errors.New("mobile push is not configured")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
