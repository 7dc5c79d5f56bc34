package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout vgrid
var (
	ErrNoSource         = errors.New("no data source given")
	ErrTooManySources   = errors.New("more than one data source given")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrNotConnected     = errors.New("not connected to database")
	ErrReadOnly         = errors.New("dataset is read-only")
	ErrInvalidPinSide   = errors.New("invalid pin side")
	ErrInvalidDimension = errors.New("invalid dimension")
)

// GridError is a structured error with context and suggestions
type GridError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *GridError) Error() string {
	return e.Title
}

func (e *GridError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *GridError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf("\n  Cause: %s\n", e.Err))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new GridError
func NewError(title string) *GridError {
	return &GridError{Title: title}
}

// WithMessage adds a detailed message
func (e *GridError) WithMessage(msg string) *GridError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *GridError) WithContext(ctx string) *GridError {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *GridError) WithCause(cause string) *GridError {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithCauses adds multiple possible causes
func (e *GridError) WithCauses(causes ...string) *GridError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *GridError) WithSuggestion(sug string) *GridError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *GridError) WithSuggestions(sugs ...string) *GridError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *GridError) Wrap(err error) *GridError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// NoSourceError returns a structured error for a missing data source
func NoSourceError() *GridError {
	return NewError("No data source").
		WithMessage("vgrid needs exactly one of --csv, --demo or --query").
		WithSuggestions(
			"vgrid view --demo 50000            # Synthetic dataset",
			"vgrid view --csv data.csv          # Load a CSV file",
			"vgrid view --query 'SELECT ...'    # Load from PostgreSQL",
		).
		Wrap(ErrNoSource)
}

// TooManySourcesError returns a structured error for conflicting sources
func TooManySourcesError(given []string) *GridError {
	return NewError("Conflicting data sources").
		WithMessage(fmt.Sprintf("Got %s; pick one", strings.Join(given, ", "))).
		Wrap(ErrTooManySources)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *GridError {
	return NewError("Cannot connect to database").
		WithContext(url).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Network connectivity issues",
			"Database does not exist",
		).
		WithSuggestions(
			"vgrid config database.url <url>   # Set the connection URL",
		).
		Wrap(err)
}

// ConfigLoadError returns a structured error for an unreadable config file
func ConfigLoadError(path string, err error) *GridError {
	return NewError("Cannot read configuration").
		WithContext(path).
		WithCauses(
			"The file is not valid TOML",
			"A value has the wrong type",
		).
		WithSuggestions(
			"vgrid config --list               # Show the effective configuration",
		).
		Wrap(err)
}

// UnknownColumnError returns a structured error for a column id not in the grid
func UnknownColumnError(id string, known []string) *GridError {
	e := NewError(fmt.Sprintf("Unknown column '%s'", id)).Wrap(ErrUnknownColumn)
	if len(known) > 0 {
		e.WithMessage("Known columns: " + strings.Join(known, ", "))
	}
	return e
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *GridError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}
