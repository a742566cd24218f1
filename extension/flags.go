// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "full-text" -> FlagFullText).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll          = "all"            // Include every project
	FlagDemo         = "demo"           // Create the demo database
	FlagForce        = "force"          // Overwrite existing files
	FlagFullText     = "full-text"      // Reward columns starting with the whole phrase
	FlagFullTextOnly = "full-text-only" // Score the whole phrase only
	FlagLocal        = "local"          // Use local scope
	FlagSQL          = "sql"            // Print the SQL only

	// String flags

	FlagAction  = "action"   // Audit action filter
	FlagArg     = "arg"      // Argument for --where (repeatable)
	FlagColumns = "columns"  // Result columns to show
	FlagConfigB = "config-b" // Alternate config for compare
	FlagEntity  = "entity"   // Entity filter
	FlagOrder   = "order"    // Tie-break order term (repeatable)
	FlagRow     = "row"      // col=value of a hypothetical row (repeatable)
	FlagSince   = "since"    // Time window such as 7d
	FlagTextB   = "text-b"   // Alternate text for compare
	FlagWhere   = "where"    // Extra row filter

	// Numeric flags

	FlagLimit     = "limit"     // Rows per page
	FlagOffset    = "offset"    // Rows to skip
	FlagThreshold = "threshold" // Minimum relevance, exclusive
)
