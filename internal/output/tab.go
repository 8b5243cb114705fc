// Package output provides tab-delimited formatters for query results.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grnlab/grnlight/internal/grn"
)

// TabWriter writes edge records in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited record writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"regulator",
			"target",
			"weight",
			"subnetwork_source",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single record. A NULL weight is rendered as "-".
func (tw *TabWriter) Write(r grn.Record) error {
	weight := "-"
	if r.Weight.Valid {
		weight = strconv.FormatFloat(r.Weight.Float64, 'g', -1, 64)
	}

	values := []string{
		r.Regulator,
		r.Target,
		weight,
		r.Subnetwork,
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by every record, then flushes.
func (tw *TabWriter) WriteAll(records []grn.Record) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
