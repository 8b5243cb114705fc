package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeCollection builds a minimal collection fixture. Subnetwork files
// are only listed by the catalog, never opened, so empty files suffice.
func writeCollection(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	csv := "name,readme,is_ready,doi\n" +
		"celloracle_human,Base GRN from CellOracle,yes,10.1000/demo\n" +
		"cellnet_human_Hg1332,CellNet tissue networks,yes,\n" +
		"draft_networks,Not curated yet,no,\n"
	if err := os.WriteFile(filepath.Join(root, MetadataFile), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	subnets := map[string][]string{
		"celloracle_human":     {"promoters.parquet"},
		"cellnet_human_Hg1332": {"esc.parquet", "bcell.parquet", "colon.parquet"},
	}
	for network, files := range subnets {
		dir := filepath.Join(root, network, "networks")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, f := range files {
			if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	// Files that must not be listed as subnetworks.
	dir := filepath.Join(root, "cellnet_human_Hg1332", "networks")
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "archive.parquet.d"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestNewEmptyRoot(t *testing.T) {
	_, err := New("")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("New(\"\") error = %v, want *ConfigurationError", err)
	}
}

func TestLoadMetadata(t *testing.T) {
	cat, err := New(writeCollection(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	infos, err := cat.LoadMetadata()
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("len(infos) = %d, want 3", len(infos))
	}

	first := infos[0]
	if first.Name != "celloracle_human" {
		t.Errorf("Name = %q, want celloracle_human", first.Name)
	}
	if first.Description != "Base GRN from CellOracle" {
		t.Errorf("Description = %q", first.Description)
	}
	if !first.Ready {
		t.Error("Ready = false, want true")
	}
	if first.Extra["doi"] != "10.1000/demo" {
		t.Errorf("Extra[doi] = %q, want 10.1000/demo", first.Extra["doi"])
	}

	ready := ReadyOnly(infos)
	if len(ready) != 2 {
		t.Errorf("len(ReadyOnly) = %d, want 2", len(ready))
	}
	for _, info := range ready {
		if !info.Ready {
			t.Errorf("ReadyOnly kept %q with Ready = false", info.Name)
		}
	}
}

func TestLoadMetadataMissingFile(t *testing.T) {
	cat, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = cat.LoadMetadata()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LoadMetadata error = %v, want *ConfigurationError", err)
	}
}

func TestLoadMetadataMissingNameColumn(t *testing.T) {
	root := t.TempDir()
	csv := "network_id,readme\nfoo,bar\n"
	if err := os.WriteFile(filepath.Join(root, MetadataFile), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = cat.LoadMetadata()
	var fmtErr *MetadataFormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("LoadMetadata error = %v, want *MetadataFormatError", err)
	}
}

func TestListSubnetworks(t *testing.T) {
	cat, err := New(writeCollection(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := cat.ListSubnetworks("cellnet_human_Hg1332")
	if err != nil {
		t.Fatalf("ListSubnetworks: %v", err)
	}

	want := []string{"bcell.parquet", "colon.parquet", "esc.parquet"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestListSubnetworksLiveScan(t *testing.T) {
	root := writeCollection(t)
	cat, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before, err := cat.ListSubnetworks("celloracle_human")
	if err != nil {
		t.Fatalf("ListSubnetworks: %v", err)
	}

	// Files added after construction are visible on the next call.
	added := filepath.Join(root, "celloracle_human", "networks", "atac.parquet")
	if err := os.WriteFile(added, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	after, err := cat.ListSubnetworks("celloracle_human")
	if err != nil {
		t.Fatalf("ListSubnetworks: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("len(after) = %d, want %d", len(after), len(before)+1)
	}
	if after[0] != "atac.parquet" {
		t.Errorf("after[0] = %q, want atac.parquet", after[0])
	}
}

func TestListSubnetworksUnknownNetwork(t *testing.T) {
	cat, err := New(writeCollection(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = cat.ListSubnetworks("no_such_network")
	var unknownErr *UnknownNetworkError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("ListSubnetworks error = %v, want *UnknownNetworkError", err)
	}
	if unknownErr.Name != "no_such_network" {
		t.Errorf("Name = %q, want no_such_network", unknownErr.Name)
	}
}

func TestSubnetworkPath(t *testing.T) {
	root := writeCollection(t)
	cat, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := cat.SubnetworkPath("cellnet_human_Hg1332", "bcell.parquet")
	if err != nil {
		t.Fatalf("SubnetworkPath: %v", err)
	}
	want := filepath.Join(root, "cellnet_human_Hg1332", "networks", "bcell.parquet")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	_, err = cat.SubnetworkPath("cellnet_human_Hg1332", "liver.parquet")
	var unknownErr *UnknownSubnetworkError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("SubnetworkPath error = %v, want *UnknownSubnetworkError", err)
	}
	if unknownErr.File != "liver.parquet" {
		t.Errorf("File = %q, want liver.parquet", unknownErr.File)
	}
}
