// Package validate checks the SQL identifiers sift interpolates into
// generated queries.
//
// Search text and thresholds always travel as bound parameters. Table,
// column and key names cannot be bound, so they are the one place user
// input reaches SQL text directly. Every identifier that ends up in a
// query passes through this package first.
//
// # Validation Functions
//
// Identifier validates a bare name (users, first_name).
// Qualified validates a name with an optional table prefix (users.first_name)
// and splits it into its parts.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go.
// Use errors.Is() for type-safe checking:
//
//	if errors.Is(err, validate.ErrInvalidIdentifier) {
//	    // handle bad column name
//	}
package validate
