package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbeallor/rsdump/pkg/rsdump"
)

// copyChunkSize bounds the number of rows handed to a single CopyFrom
// call so very large files do not pin the whole payload in one batch.
// Chunking is internal; a caller observes only the final table contents.
const copyChunkSize = 1000

// Dump writes table to schemaName.tableName with replace semantics: any
// existing table of that name is dropped and recreated from the header,
// then the rows are bulk-copied in. All columns are created as text. No
// synthetic index column is added.
//
// The drop, create and copy run in one transaction, so a failed write
// leaves the previous table intact.
func Dump(ctx context.Context, pool *pgxpool.Pool, table Table, schemaName, tableName string, logger rsdump.Logger) error {
	logger.Info("Dumping csv data to warehouse table %s.%s...", schemaName, tableName)

	qualified := pgx.Identifier{schemaName, tableName}.Sanitize()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+qualified); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, createTableSQL(qualified, table.Columns)); err != nil {
		return err
	}

	for start := 0; start < len(table.Rows); start += copyChunkSize {
		end := start + copyChunkSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		logger.Verbose("Copying rows %d-%d of %d", start+1, end, len(table.Rows))

		if _, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{schemaName, tableName},
			table.Columns,
			pgx.CopyFromRows(rowValues(table.Rows[start:end])),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Info("Done dumping csv data to warehouse table %s.%s.", schemaName, tableName)
	return nil
}

// createTableSQL builds the CREATE TABLE statement for a CSV header.
// Every column is text; type inference is not part of this tool.
func createTableSQL(qualified string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = pgx.Identifier{col}.Sanitize() + " text"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", qualified, strings.Join(defs, ", "))
}

// rowValues converts string records to the []any rows CopyFrom expects.
func rowValues(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		values[i] = vals
	}
	return values
}
