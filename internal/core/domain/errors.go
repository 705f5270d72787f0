package domain

import (
	"errors"
	"strings"
)

// Authentication.
var (
	ErrUnauthorized       = errors.New("access token is required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPrincipalNotFound  = errors.New("principal no longer exists")
)

// Authorization.
var ErrForbidden = errors.New("access denied")

// Lookups.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSignalNotFound     = errors.New("trade signal not found")
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrCommentNotFound    = errors.New("comment not found")
)

// Input and uniqueness.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidID         = errors.New("invalid id")
	ErrEmailTaken        = errors.New("email already registered")
	ErrConflict          = errors.New("resource already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for a rejected request.
type ValidationError struct {
	Fields []FieldViolation
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Fields: []FieldViolation{{Path: path, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Path+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ForbiddenError is ErrForbidden with a caller-facing reason.
type ForbiddenError struct {
	Reason string
}

// Forbidden returns an error matching ErrForbidden that carries reason.
func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

func (e *ForbiddenError) Error() string { return "access denied: " + e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }
