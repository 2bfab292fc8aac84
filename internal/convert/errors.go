package convert

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort        = errors.New("invalid port configuration")
	ErrInvalidVolume      = errors.New("invalid volume configuration")
	ErrInvalidEnvironment = errors.New("invalid environment configuration")
	ErrInvalidField       = errors.New("invalid service field")
	ErrMissingSource      = errors.New("service must have image or build")
	ErrMissingCredential  = errors.New("database credential not found")
)

// ValidationError reports a service field that failed a structural check.
type ValidationError struct {
	Service string
	Field   string // compose key, e.g. "ports"
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service %q: %s: %s", e.Service, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Severity grades a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal finding returned next to the converted document.
// Error diagnostics mean the service was left out of the output.
type Diagnostic struct {
	Severity Severity
	Service  string
	Field    string
	Message  string
	Err      error
}

func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: %s", d.Service, d.Message)
	}
	return fmt.Sprintf("%s.%s: %s", d.Service, d.Field, d.Message)
}

func diagnosticFromError(err *ValidationError) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Service:  err.Service,
		Field:    err.Field,
		Message:  err.Message,
		Err:      err,
	}
}

// errorPolicy decides what happens after a service fails validation.
type errorPolicy interface {
	// handle records err and reports whether the run must stop.
	handle(err *ValidationError) bool
}

// failFast stops at the first error.
type failFast struct{}

func (failFast) handle(*ValidationError) bool { return true }

// collectAll turns every error into a diagnostic and keeps going.
type collectAll struct {
	diagnostics *[]Diagnostic
}

func (c collectAll) handle(err *ValidationError) bool {
	*c.diagnostics = append(*c.diagnostics, diagnosticFromError(err))
	return false
}
