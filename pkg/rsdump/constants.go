package rsdump

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or missing credentials
	ExitConnectionError = 11 // Failed to connect to database
	ExitFileMissing     = 12 // Source CSV file not found
)

const (
	// DefaultEnvPrefix is the environment variable prefix used to resolve
	// warehouse credentials when none is configured.
	DefaultEnvPrefix = "REDSHIFT"

	// DefaultCSVName is the CSV file loaded when no path is configured,
	// resolved relative to the working directory.
	DefaultCSVName = "dummy_data.csv"

	// DefaultSchemaName is the target schema written to when none is
	// configured.
	DefaultSchemaName = "dbt_dev_david_beallor"

	// DefaultTableName is the target table written to when none is
	// configured.
	DefaultTableName = "dummy_data"
)
