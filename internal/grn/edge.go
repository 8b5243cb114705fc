// Package grn provides eager and lazy access to gene regulatory network
// edge lists stored as Parquet subnetwork files.
package grn

import "database/sql"

// Edge is one regulator-target record. Weight is NULL when the backing
// source has no weight for the pair.
type Edge struct {
	Regulator string
	Target    string
	Weight    sql.NullFloat64
}

// Record is an Edge together with the backing source it came from.
type Record struct {
	Edge
	// Subnetwork identifies the backing source: the subnetwork filename,
	// the file path, or "(in-memory)" for table sources.
	Subnetwork string
}

// Table is a fully materialized edge list, as returned by the eager
// loader or supplied by the caller as a LightNetwork source.
type Table struct {
	Edges []Edge
	// HasWeight reports whether the source carried a weight column.
	// When false, loader-produced tables hold the placeholder weight -1.
	HasWeight bool
}
