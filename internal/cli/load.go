package cli

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dbeallor/rsdump/internal/config"
	"github.com/dbeallor/rsdump/internal/db"
	"github.com/dbeallor/rsdump/internal/loader"
	"github.com/dbeallor/rsdump/internal/logging"
	"github.com/dbeallor/rsdump/pkg/rsdump"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the configured CSV into the warehouse table",
	Long: `Load reads a CSV file and writes it to the target warehouse table,
replacing any prior contents and structure of that table.

The load command:
1. Loads .env and the optional rsdump.yaml project file
2. Resolves warehouse credentials from prefixed environment variables
3. Connects to the warehouse
4. Reads the CSV (header row defines the columns)
5. Drops and recreates the target table from the CSV contents

With no flags and no rsdump.yaml the built-in defaults apply: the file
"dummy_data.csv" in the working directory is written to
dbt_dev_david_beallor.dummy_data using credentials under the REDSHIFT
prefix.

Examples:
  # Zero-argument run with the built-in defaults
  rsdump load

  # Load a specific file into a specific table
  rsdump load --csv ./data/events.csv --schema analytics_staging --table events

  # Resolve credentials from WAREHOUSE_* environment variables
  rsdump load --env-prefix WAREHOUSE`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

type loadFlagValues struct {
	csvPath    string
	schemaName string
	tableName  string
	envPrefix  string
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.csvPath, "csv", "",
		"Path to the CSV file to load\n"+
			"Precedence: --csv > rsdump.yaml csv_path > "+rsdump.DefaultCSVName)
	loadCmd.Flags().StringVar(&loadFlags.schemaName, "schema", "",
		"Target schema name\n"+
			"Precedence: --schema > rsdump.yaml schema_name > "+rsdump.DefaultSchemaName)
	loadCmd.Flags().StringVar(&loadFlags.tableName, "table", "",
		"Target table name\n"+
			"Precedence: --table > rsdump.yaml table_name > "+rsdump.DefaultTableName)
	loadCmd.Flags().StringVar(&loadFlags.envPrefix, "env-prefix", "",
		"Environment variable prefix for credential resolution\n"+
			"Precedence: --env-prefix > rsdump.yaml env_prefix > "+rsdump.DefaultEnvPrefix)
}

// loadSettings holds the fully resolved invocation parameters.
type loadSettings struct {
	csvPath    string
	schemaName string
	tableName  string
	envPrefix  string
}

// resolveSettings layers flags over the project file over the built-in
// defaults. cfg may be nil when no rsdump.yaml exists.
func resolveSettings(flags loadFlagValues, cfg *config.ProjectConfig) loadSettings {
	settings := loadSettings{
		csvPath:    rsdump.DefaultCSVName,
		schemaName: rsdump.DefaultSchemaName,
		tableName:  rsdump.DefaultTableName,
		envPrefix:  rsdump.DefaultEnvPrefix,
	}

	if cfg != nil {
		if cfg.CSVPath != "" {
			settings.csvPath = cfg.CSVPath
		}
		if cfg.SchemaName != "" {
			settings.schemaName = cfg.SchemaName
		}
		if cfg.TableName != "" {
			settings.tableName = cfg.TableName
		}
		if cfg.EnvPrefix != "" {
			settings.envPrefix = cfg.EnvPrefix
		}
	}

	if flags.csvPath != "" {
		settings.csvPath = flags.csvPath
	}
	if flags.schemaName != "" {
		settings.schemaName = flags.schemaName
	}
	if flags.tableName != "" {
		settings.tableName = flags.tableName
	}
	if flags.envPrefix != "" {
		settings.envPrefix = flags.envPrefix
	}

	return settings
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	// Explicit configuration-loading step, fully executed before the
	// credential resolver runs: .env first, then the project file.
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		cfg = nil
	}

	settings := resolveSettings(loadFlags, cfg)
	logger.Verbose("Resolved settings: csv=%s target=%s.%s prefix=%s",
		settings.csvPath, settings.schemaName, settings.tableName, settings.envPrefix)

	creds, err := rsdump.CredentialsFromEnv(settings.envPrefix)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// The connection is established before the CSV file check, matching
	// the observed pipeline ordering. The deferred Close releases it on
	// every exit path, including a missing file.
	pool, err := db.NewConnector(creds).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	return loader.Run(ctx, pool, settings.csvPath, settings.schemaName, settings.tableName, logger)
}
