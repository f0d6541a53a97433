// flags.go defines constants for CLI flag names shared by behaviors.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package behavior

const (
	// Boolean flags

	FlagBareCode = "bare-code" // Render code sections without PHP tags
	FlagDryRun   = "dry-run"   // Preview without making changes
	FlagLocal    = "local"     // Use local scope
	FlagLong     = "long"      // Long format output
	FlagRaw      = "raw"       // Raw output without formatting
	FlagSettings = "settings"  // Only print the settings section
	FlagTree     = "tree"      // Tree format output

	// String flags

	FlagExt     = "ext"     // Extension filter
	FlagFile    = "file"    // Read content from file
	FlagFrom    = "from"    // Source layer
	FlagLayers  = "layers"  // Layer pair, e.g. "db:file"
	FlagMatch   = "match"   // Glob applied to file names
	FlagSection = "section" // Section to print: settings, code or markup
	FlagSince   = "since"   // Only templates modified within a duration
	FlagTo      = "to"      // Destination layer
)
