// identifier.go implements SQL identifier validation.

package validate

import (
	"fmt"
	"strings"
)

// MaxIdentifier is the longest identifier accepted. PostgreSQL truncates
// names at 63 bytes; SQLite has no limit, so the stricter bound applies.
const MaxIdentifier = 63

// Identifier validates a bare SQL identifier.
//
// Validation rules:
//   - Empty names rejected
//   - Length capped at MaxIdentifier
//   - First character must be an ASCII letter or underscore
//   - Remaining characters must be ASCII letters, digits or underscores
//
// Quoted identifiers are deliberately unsupported: names containing spaces,
// quotes or dots cannot be expressed.
func Identifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if len(name) > MaxIdentifier {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrIdentifierTooLong, name, MaxIdentifier)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return fmt.Errorf("%w: %q contains %q at offset %d", ErrInvalidIdentifier, name, c, i)
		}
	}
	return nil
}

// Qualified validates a column reference of the form "column" or
// "table.column" and returns its parts. The table is empty when no prefix
// was given.
func Qualified(ref string) (table, column string, err error) {
	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 1:
		column = parts[0]
	case 2:
		table, column = parts[0], parts[1]
		if err := Identifier(table); err != nil {
			return "", "", err
		}
	default:
		return "", "", fmt.Errorf("%w: %q has more than one dot", ErrInvalidIdentifier, ref)
	}
	if err := Identifier(column); err != nil {
		return "", "", err
	}
	return table, column, nil
}
