package relevance

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid searchable-column or join definitions.
	// It is only ever returned while building a Config, never at search time.
	ErrConfiguration = errors.New("invalid search configuration")

	// ErrInvalidArgument marks a per-search request that cannot be served,
	// such as a non-finite threshold or a phrase-only search with no text.
	ErrInvalidArgument = errors.New("invalid search argument")
)

// ConfigurationError describes which part of a configuration was rejected.
// It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	Field  string // offending column, join or entity field
	Reason string
	Err    error // underlying cause, if any
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(field, reason string, cause error) error {
	return &ConfigurationError{Field: field, Reason: reason, Err: cause}
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
