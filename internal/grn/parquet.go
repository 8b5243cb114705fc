package grn

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// openEngine opens an in-memory DuckDB connection. All Parquet access
// goes through it so that column projection and row-group filtering
// happen inside the storage layer.
func openEngine() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return db, nil
}

// quotePath quotes a file path as a SQL string literal for use inside
// read_parquet(). DuckDB does not bind parameters in table function
// arguments across all driver versions, so the path is escaped inline.
func quotePath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}

// parquetColumns returns the column names of a Parquet file without
// decoding any rows (LIMIT 0 reads only the footer metadata).
func parquetColumns(db *sql.DB, path string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM read_parquet(%s) LIMIT 0", quotePath(path)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return cols, rows.Err()
}

// hasColumn reports whether name is among cols.
func hasColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

// checkEdgeSchema verifies the regulator and target columns are present.
func checkEdgeSchema(cols []string) error {
	for _, required := range []string{"regulator", "target"} {
		if !hasColumn(cols, required) {
			return fmt.Errorf("missing required column %q", required)
		}
	}
	return nil
}
