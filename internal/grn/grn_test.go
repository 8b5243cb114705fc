package grn

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/grnlab/grnlight/internal/catalog"
)

// Fixture edges for the test collection. The two subnetworks have
// disjoint gene sets so queries can be attributed to one file.
var (
	bcellEdges = []Edge{
		{Regulator: "PAX5", Target: "CD19", Weight: weightOf(2.5)},
		{Regulator: "EBF1", Target: "CD19", Weight: weightOf(1.1)},
		{Regulator: "PAX5", Target: "CD79A", Weight: weightOf(0.8)},
	}
	tcellEdges = []Edge{
		{Regulator: "GATA3", Target: "CD3E", Weight: weightOf(1.9)},
		{Regulator: "TBX21", Target: "IFNG", Weight: weightOf(-0.4)},
	}
)

func weightOf(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// writeParquetFile writes edges to a Parquet file through DuckDB, the
// same engine the package queries with.
func writeParquetFile(t *testing.T, path string, withWeight bool, edges []Edge) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	defer db.Close()

	cols := "regulator VARCHAR, target VARCHAR"
	if withWeight {
		cols += ", weight DOUBLE"
	}
	if _, err := db.Exec("CREATE TABLE edges (" + cols + ")"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, e := range edges {
		if withWeight {
			_, err = db.Exec("INSERT INTO edges VALUES (?, ?, ?)", e.Regulator, e.Target, e.Weight)
		} else {
			_, err = db.Exec("INSERT INTO edges VALUES (?, ?)", e.Regulator, e.Target)
		}
		if err != nil {
			t.Fatalf("insert edge: %v", err)
		}
	}
	q := fmt.Sprintf("COPY (SELECT * FROM edges) TO %s (FORMAT PARQUET)", quotePath(path))
	if _, err := db.Exec(q); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
}

// testCollection builds a collection with one network, cellnet_test,
// holding bcell.parquet and tcell.parquet.
func testCollection(t *testing.T) (*catalog.Catalog, string) {
	t.Helper()
	root := t.TempDir()

	csv := "name,readme,is_ready\ncellnet_test,test fixture,yes\n"
	if err := os.WriteFile(filepath.Join(root, catalog.MetadataFile), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(root, "cellnet_test", "networks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeParquetFile(t, filepath.Join(dir, "bcell.parquet"), true, bcellEdges)
	writeParquetFile(t, filepath.Join(dir, "tcell.parquet"), true, tcellEdges)

	cat, err := catalog.New(root)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat, root
}
