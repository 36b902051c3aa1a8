package loader

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbeallor/rsdump/pkg/rsdump"
)

// Run executes the full ingestion pipeline: read the CSV at csvPath,
// then replace schemaName.tableName with its contents.
//
// The pool is expected to be connected before Run is called; a missing
// file is therefore detected only after a connection already exists.
// Closing the pool stays with the caller.
func Run(ctx context.Context, pool *pgxpool.Pool, csvPath, schemaName, tableName string, logger rsdump.Logger) error {
	logger.Info("Loading csv from path %s...", csvPath)

	table, err := ReadCSV(csvPath)
	if err != nil {
		return err
	}

	logger.Info("Done loading csv from path %s (%d rows, %d columns).", csvPath, table.RowCount(), len(table.Columns))

	return Dump(ctx, pool, table, schemaName, tableName, logger)
}
