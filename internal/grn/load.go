package grn

import (
	"fmt"

	"github.com/grnlab/grnlight/internal/catalog"
)

// LoadSubnetwork reads one subnetwork file fully into memory. This is
// the escape hatch from the lazy view for callers that accept the memory
// cost of full materialization. The file must be a member of the named
// network per the catalog; otherwise a *catalog.UnknownSubnetworkError
// is returned before any file I/O.
//
// Files without a weight column load with HasWeight false and the
// placeholder weight -1 on every row.
func LoadSubnetwork(cat *catalog.Catalog, network, file string) (*Table, error) {
	path, err := cat.SubnetworkPath(network, file)
	if err != nil {
		return nil, err
	}

	db, err := openEngine()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cols, err := parquetColumns(db, path)
	if err != nil {
		return nil, &SourceReadError{Source: path, Err: err}
	}
	if err := checkEdgeSchema(cols); err != nil {
		return nil, &SourceReadError{Source: path, Err: err}
	}

	weightExpr := "-1::DOUBLE AS weight"
	hasWeight := hasColumn(cols, "weight")
	if hasWeight {
		weightExpr = "weight"
	}

	rows, err := db.Query(fmt.Sprintf(
		"SELECT regulator, target, %s FROM read_parquet(%s)",
		weightExpr, quotePath(path)))
	if err != nil {
		return nil, &SourceReadError{Source: path, Err: err}
	}
	defer rows.Close()

	t := &Table{HasWeight: hasWeight}
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Regulator, &e.Target, &e.Weight); err != nil {
			return nil, &SourceReadError{Source: path, Err: err}
		}
		t.Edges = append(t.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceReadError{Source: path, Err: err}
	}
	return t, nil
}

// LoadAllSubnetworks concatenates every subnetwork of a network into one
// table, in ListSubnetworks order. HasWeight is true only if every file
// carried a weight column.
func LoadAllSubnetworks(cat *catalog.Catalog, network string) (*Table, error) {
	files, err := cat.ListSubnetworks(network)
	if err != nil {
		return nil, err
	}

	all := &Table{HasWeight: true}
	for _, f := range files {
		t, err := LoadSubnetwork(cat, network, f)
		if err != nil {
			return nil, err
		}
		all.Edges = append(all.Edges, t.Edges...)
		all.HasWeight = all.HasWeight && t.HasWeight
	}
	return all, nil
}
