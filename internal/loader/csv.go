// Package loader implements the CSV ingestion pipeline: read a CSV file
// into an in-memory table, then write it to a schema-qualified warehouse
// table with replace semantics.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dbeallor/rsdump/pkg/rsdump"
)

// Table is the in-memory representation of a CSV file. Columns come from
// the header row; Rows hold the remaining records in file order. All
// values are kept as text, which is what the warehouse columns become.
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows (header excluded).
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ReadCSV parses the file at path into a Table.
//
// The path must refer to an existing regular file; otherwise an error
// wrapping rsdump.ErrFileNotFound is returned, naming the path. This is
// the only explicit validation on the ingestion path. Parse errors from
// the csv package (malformed quoting, ragged rows) propagate as-is.
func ReadCSV(path string) (Table, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Table{}, fmt.Errorf("no file at path %s: %w", path, rsdump.ErrFileNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv file %s has no header row", path)
	}

	return Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}
