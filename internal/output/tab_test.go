package output

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/grnlab/grnlight/internal/catalog"
	"github.com/grnlab/grnlight/internal/grn"
)

func TestTabWriter(t *testing.T) {
	records := []grn.Record{
		{
			Edge: grn.Edge{
				Regulator: "PAX5",
				Target:    "CD19",
				Weight:    sql.NullFloat64{Float64: 2.5, Valid: true},
			},
			Subnetwork: "bcell.parquet",
		},
		{
			Edge:       grn.Edge{Regulator: "SOX2", Target: "NANOG"},
			Subnetwork: "(in-memory)",
		},
	}

	var buf bytes.Buffer
	if err := NewTabWriter(&buf).WriteAll(records); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	want := "regulator\ttarget\tweight\tsubnetwork_source\n" +
		"PAX5\tCD19\t2.5\tbcell.parquet\n" +
		"SOX2\tNANOG\t-\t(in-memory)\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteNetworks(t *testing.T) {
	infos := []catalog.NetworkInfo{
		{Name: "celloracle_human", Description: "Base GRN", Ready: true},
		{Name: "draft_networks"},
	}

	var buf bytes.Buffer
	if err := WriteNetworks(&buf, infos); err != nil {
		t.Fatalf("WriteNetworks: %v", err)
	}

	want := "name\tis_ready\tdescription\n" +
		"celloracle_human\tyes\tBase GRN\n" +
		"draft_networks\tno\t-\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
