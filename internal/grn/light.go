package grn

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/grnlab/grnlight/internal/catalog"
)

// memoryLabel is the Subnetwork attribution for in-memory table sources.
const memoryLabel = "(in-memory)"

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceTable
)

// source is one backing source of a LightNetwork. Exactly one of path or
// table is set, according to kind; the variant is resolved at
// construction and never re-inspected.
type source struct {
	kind  sourceKind
	path  string // sourceFile: absolute or caller-given Parquet path
	label string // value of the Subnetwork attribution column
	table *Table // sourceTable: caller's table, shared by reference
}

// LightNetwork is a lazy, read-only view over one or more edge-list
// sources. Construction never reads edge data; queries push the gene
// filter into the Parquet reader so memory use is proportional to the
// match count, not the corpus size.
//
// A LightNetwork owns one database connection, released by Close. One
// instance is not safe for concurrent queries; distinct instances are
// independent. Table sources are borrowed from the caller and must not
// be mutated while the view is in use.
type LightNetwork struct {
	db      *sql.DB
	sources []source
	logger  *zap.Logger
}

// Open creates a LightNetwork over the subnetworks of a named network.
// With no subnets given, all subnetworks of the network are used;
// otherwise each name is validated against the catalog and an unknown
// name fails with *catalog.UnknownSubnetworkError before any file I/O.
func Open(cat *catalog.Catalog, network string, subnets ...string) (*LightNetwork, error) {
	if len(subnets) == 0 {
		all, err := cat.ListSubnetworks(network)
		if err != nil {
			return nil, err
		}
		subnets = all
	}

	sources := make([]source, 0, len(subnets))
	for _, s := range subnets {
		path, err := cat.SubnetworkPath(network, s)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{kind: sourceFile, path: path, label: s})
	}
	return newLightNetwork(sources)
}

// OpenFiles creates a LightNetwork over an explicit ordered list of
// Parquet files. Paths are not checked at construction; an unreadable
// path surfaces as a *SourceReadError on the first query.
func OpenFiles(paths []string) (*LightNetwork, error) {
	sources := make([]source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, source{kind: sourceFile, path: p, label: p})
	}
	return newLightNetwork(sources)
}

// OpenTable creates a LightNetwork over an in-memory table. The table is
// shared by reference, not copied; the caller must not mutate it while
// the view is live.
func OpenTable(t *Table) (*LightNetwork, error) {
	if t == nil {
		return nil, errors.New("light network: table is nil")
	}
	return newLightNetwork([]source{{kind: sourceTable, table: t, label: memoryLabel}})
}

func newLightNetwork(sources []source) (*LightNetwork, error) {
	if len(sources) == 0 {
		return nil, errors.New("light network: at least one backing source required")
	}
	db, err := openEngine()
	if err != nil {
		return nil, err
	}
	return &LightNetwork{db: db, sources: sources, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for query debug messages.
func (n *LightNetwork) SetLogger(l *zap.Logger) {
	n.logger = l
}

// Close releases the underlying database connection.
func (n *LightNetwork) Close() error {
	return n.db.Close()
}

// Sources returns the backing source labels in construction order.
func (n *LightNetwork) Sources() []string {
	labels := make([]string, len(n.sources))
	for i, s := range n.sources {
		labels[i] = s.label
	}
	return labels
}

func (n *LightNetwork) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "LightNetwork over %d source(s):", len(n.sources))
	for _, s := range n.sources {
		if s.kind == sourceTable {
			fmt.Fprintf(&b, "\n  in-memory table (%d edges)", len(s.table.Edges))
		} else {
			fmt.Fprintf(&b, "\n  %s", s.path)
		}
	}
	return b.String()
}

// GetRegulators returns every record whose target column equals the
// given gene. Matching is exact and case-sensitive; behavior for source
// data containing multiple case variants of one identifier is not
// normalized. A gene absent from all sources yields an empty result,
// not an error.
func (n *LightNetwork) GetRegulators(target string) ([]Record, error) {
	return n.query("target", target)
}

// GetTargets returns every record whose regulator column equals the
// given gene. Matching semantics are the same as GetRegulators.
func (n *LightNetwork) GetTargets(regulator string) ([]Record, error) {
	return n.query("regulator", regulator)
}

// GetAll returns the full union of all backing sources. This
// materializes every row and can be memory-heavy on large collections;
// prefer the point queries.
func (n *LightNetwork) GetAll() ([]Record, error) {
	return n.query("", "")
}

// query scans every source in construction order, appending matches.
// column is "regulator", "target", or "" for a full scan. Rows come back
// grouped by source, in on-disk order within each source; duplicate
// edges across sources are all returned. Any failing source aborts the
// whole query.
func (n *LightNetwork) query(column, gene string) ([]Record, error) {
	var records []Record
	for _, src := range n.sources {
		var (
			matched []Record
			err     error
		)
		if src.kind == sourceTable {
			matched = scanTable(src, column, gene)
		} else {
			matched, err = n.queryFile(src, column, gene)
		}
		if err != nil {
			return nil, err
		}
		records = append(records, matched...)
	}
	n.logger.Debug("query complete",
		zap.String("column", column),
		zap.String("gene", gene),
		zap.Int("rows", len(records)))
	return records, nil
}

// queryFile runs a filtered select over one Parquet file. The WHERE
// clause is evaluated inside DuckDB's Parquet reader, so only matching
// row groups are decoded.
func (n *LightNetwork) queryFile(src source, column, gene string) ([]Record, error) {
	cols, err := parquetColumns(n.db, src.path)
	if err != nil {
		return nil, &SourceReadError{Source: src.path, Err: err}
	}
	if err := checkEdgeSchema(cols); err != nil {
		return nil, &SourceReadError{Source: src.path, Err: err}
	}

	weightExpr := "NULL::DOUBLE AS weight"
	if hasColumn(cols, "weight") {
		weightExpr = "weight"
	}

	q := fmt.Sprintf("SELECT regulator, target, %s FROM read_parquet(%s)", weightExpr, quotePath(src.path))
	var args []any
	if column != "" {
		q += fmt.Sprintf(" WHERE %s = ?", column)
		args = append(args, gene)
	}

	rows, err := n.db.Query(q, args...)
	if err != nil {
		return nil, &SourceReadError{Source: src.path, Err: err}
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r := Record{Subnetwork: src.label}
		if err := rows.Scan(&r.Regulator, &r.Target, &r.Weight); err != nil {
			return nil, &SourceReadError{Source: src.path, Err: err}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceReadError{Source: src.path, Err: err}
	}
	return records, nil
}

// scanTable filters an in-memory source directly. The data is already
// resident, so a linear scan adds no materialization beyond the matches.
func scanTable(src source, column, gene string) []Record {
	var records []Record
	for _, e := range src.table.Edges {
		switch column {
		case "target":
			if e.Target != gene {
				continue
			}
		case "regulator":
			if e.Regulator != gene {
				continue
			}
		}
		records = append(records, Record{Edge: e, Subnetwork: src.label})
	}
	return records
}

// NumEdges returns the total record count across all backing sources.
// Overlapping edges are counted once per source.
func (n *LightNetwork) NumEdges() (int64, error) {
	var total int64
	for _, src := range n.sources {
		if src.kind == sourceTable {
			total += int64(len(src.table.Edges))
			continue
		}
		var count int64
		q := fmt.Sprintf("SELECT COUNT(*) FROM read_parquet(%s)", quotePath(src.path))
		if err := n.db.QueryRow(q).Scan(&count); err != nil {
			return 0, &SourceReadError{Source: src.path, Err: err}
		}
		total += count
	}
	return total, nil
}

// Distinct returns the sorted distinct values of the regulator or target
// column across all sources. File sources lacking the column are
// skipped.
func (n *LightNetwork) Distinct(column string) ([]string, error) {
	if column != "regulator" && column != "target" {
		return nil, fmt.Errorf("distinct: column must be %q or %q, got %q", "regulator", "target", column)
	}

	seen := make(map[string]struct{})
	for _, src := range n.sources {
		if src.kind == sourceTable {
			for _, e := range src.table.Edges {
				if column == "regulator" {
					seen[e.Regulator] = struct{}{}
				} else {
					seen[e.Target] = struct{}{}
				}
			}
			continue
		}

		cols, err := parquetColumns(n.db, src.path)
		if err != nil {
			return nil, &SourceReadError{Source: src.path, Err: err}
		}
		if !hasColumn(cols, column) {
			continue
		}
		q := fmt.Sprintf("SELECT DISTINCT %s FROM read_parquet(%s)", column, quotePath(src.path))
		rows, err := n.db.Query(q)
		if err != nil {
			return nil, &SourceReadError{Source: src.path, Err: err}
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, &SourceReadError{Source: src.path, Err: err}
			}
			seen[v] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, &SourceReadError{Source: src.path, Err: err}
		}
		rows.Close()
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// Regulators returns the sorted distinct regulators across all sources.
func (n *LightNetwork) Regulators() ([]string, error) {
	return n.Distinct("regulator")
}

// SaveParquet materializes the full union to a single Parquet file,
// including the Subnetwork attribution column. The filename must end in
// .parquet.
func (n *LightNetwork) SaveParquet(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".parquet") {
		return fmt.Errorf("save: filename must end with .parquet, got %q", path)
	}

	records, err := n.GetAll()
	if err != nil {
		return err
	}

	if _, err := n.db.Exec(`CREATE OR REPLACE TABLE grn_export (
		regulator VARCHAR,
		target VARCHAR,
		weight DOUBLE,
		subnetwork_source VARCHAR
	)`); err != nil {
		return fmt.Errorf("save: create staging table: %w", err)
	}
	defer n.db.Exec("DROP TABLE IF EXISTS grn_export")

	if err := n.stageRecords(records); err != nil {
		return err
	}

	q := fmt.Sprintf("COPY (SELECT * FROM grn_export) TO %s (FORMAT PARQUET)", quotePath(path))
	if _, err := n.db.Exec(q); err != nil {
		return fmt.Errorf("save: write %s: %w", path, err)
	}
	n.logger.Debug("saved network", zap.String("path", path), zap.Int("rows", len(records)))
	return nil
}

// stageRecords bulk-inserts records into the staging table using the
// Appender API, which is much faster than row-by-row inserts.
func (n *LightNetwork) stageRecords(records []Record) error {
	conn, err := n.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("save: get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "grn_export")
		return err
	}); err != nil {
		return fmt.Errorf("save: create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		var weight any
		if r.Weight.Valid {
			weight = r.Weight.Float64
		}
		if err := appender.AppendRow(r.Regulator, r.Target, weight, r.Subnetwork); err != nil {
			return fmt.Errorf("save: stage record: %w", err)
		}
	}
	return appender.Flush()
}
