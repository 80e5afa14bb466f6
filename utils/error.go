package utils

import (
	"errors"
	"fmt"
)

// Error taxonomy. API handlers map these to HTTP statuses in one place;
// model/workflow code never touches status codes.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrorRecordNotFound  = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)

func ForbiddenError(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func InvalidTransitionError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, msg)
}

func ConflictError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}
