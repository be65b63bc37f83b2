// Package parsererror defines the error taxonomy of the ingestion pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrEmptyInput is returned when the statement text is blank.
	ErrEmptyInput = errors.New("empty statement text")
	// ErrNoTransactions is returned when no stage produced a candidate.
	ErrNoTransactions = errors.New("no transactions found")
	// ErrAIOverloaded is returned by AI generators that hit a rate limit or
	// a temporarily unavailable upstream.
	ErrAIOverloaded = errors.New("ai provider overloaded")
)

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an AI item or record rejected by validation.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %d rejected: %s", e.Index, e.Reason)
}

// CategorizationError represents a categorization tier failure
type CategorizationError struct {
	Transaction string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %s using %s: %v",
		e.Transaction, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that cannot be turned into
// statement text.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// ConfigurationError reports a missing or invalid setting.
type ConfigurationError struct {
	Key string
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for '%s': %s", e.Key, e.Msg)
}

// IsOverloaded reports whether err signals an overloaded AI provider.
func IsOverloaded(err error) bool {
	return errors.Is(err, ErrAIOverloaded)
}
