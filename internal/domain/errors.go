package domain

import "errors"

// ValidationError reports bad or conflicting client input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// AuthError reports missing, invalid or expired credentials.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// NotFoundError reports that no row matched an owner-scoped lookup.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

var (
	ErrMissingToken       = &AuthError{Reason: "missing token"}
	ErrInvalidToken       = &AuthError{Reason: "invalid token"}
	ErrTokenExpired       = &AuthError{Reason: "token expired"}
	ErrUserNotFound       = &AuthError{Reason: "user not found"}
	ErrInvalidCredentials = &AuthError{Reason: "invalid credentials"}

	ErrEmailTaken = &ValidationError{Msg: "email already registered"}

	ErrTimesheetNotFound = &NotFoundError{Resource: "timesheet"}
	ErrReceiptNotFound   = &NotFoundError{Resource: "receipt"}
	ErrHotelNotFound     = &NotFoundError{Resource: "hotel"}

	// ErrStorageUnavailable is returned by receipt operations when no bucket is configured.
	ErrStorageUnavailable = errors.New("receipt storage not configured")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
