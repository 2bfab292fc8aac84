// Package compose loads Docker Compose documents into an ordered tree that
// the converter can walk without losing declaration order.
package compose

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput       = errors.New("compose document is empty")
	ErrInvalidShape     = errors.New("unexpected compose document shape")
	ErrNoServices       = errors.New("compose document must define at least one service")
	ErrDuplicateService = errors.New("duplicate service name")
	ErrInvalidCompose   = errors.New("compose document failed compose-spec validation")
)

// SyntaxError reports input that could not be parsed as YAML at all.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid YAML syntax: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseError reports a document that parses but does not have the expected
// compose layout.
type ParseError struct {
	Field   string // e.g. "services.web"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// FieldError is returned by DecodeService when a single service key holds a
// value of the wrong shape.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
