// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because validation failures carry no
// context beyond the category. Detailed messages come from wrapping these
// with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrIdentifierTooLong = errors.New("identifier too long")
)
