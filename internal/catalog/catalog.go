// Package catalog resolves the networks of a GRN collection and the
// subnetwork files that make them up.
//
// A collection is a directory with one metadata file at the root and one
// subdirectory per network:
//
//	<root>/
//	  published_networks.csv
//	  <network>/networks/<subnetwork>.parquet
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// MetadataFile is the well-known metadata file name at the collection root.
const MetadataFile = "published_networks.csv"

// SubnetworkExt is the file extension recognized as a subnetwork table.
const SubnetworkExt = ".parquet"

// subnetworkDir is the per-network subdirectory holding subnetwork files.
const subnetworkDir = "networks"

// NetworkInfo is one row of the collection metadata.
type NetworkInfo struct {
	Name        string
	Description string
	Ready       bool
	// Extra holds any additional metadata columns, passed through opaquely.
	Extra map[string]string
}

// Catalog resolves networks and subnetworks under a collection root.
// The root is provided explicitly at construction; nothing is cached, so
// every call reflects the current on-disk state.
type Catalog struct {
	root   string
	logger *zap.Logger
}

// New creates a catalog rooted at the given collection directory.
func New(root string) (*Catalog, error) {
	if root == "" {
		return nil, &ConfigurationError{Reason: "collection root is empty"}
	}
	return &Catalog{root: root, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for debug messages.
func (c *Catalog) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Root returns the collection root directory.
func (c *Catalog) Root() string { return c.root }

// LoadMetadata reads the collection metadata file and returns one entry
// per network. The file is re-read on every call.
func (c *Catalog) LoadMetadata() ([]NetworkInfo, error) {
	path := filepath.Join(c.root, MetadataFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot read %s", MetadataFile), Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, &MetadataFormatError{Path: path, Reason: "cannot read header", Err: err}
	}

	nameCol := -1
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
		if cols[i] == "name" {
			nameCol = i
		}
	}
	if nameCol < 0 {
		return nil, &MetadataFormatError{Path: path, Reason: `missing required column "name"`}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, &MetadataFormatError{Path: path, Reason: "cannot parse rows", Err: err}
	}

	infos := make([]NetworkInfo, 0, len(records))
	for _, rec := range records {
		if len(rec) <= nameCol {
			continue
		}
		info := NetworkInfo{Name: rec[nameCol], Extra: map[string]string{}}
		for i, v := range rec {
			if i >= len(cols) || i == nameCol {
				continue
			}
			switch cols[i] {
			case "readme", "description":
				info.Description = v
			case "is_ready":
				info.Ready = v == "yes"
				info.Extra[cols[i]] = v
			default:
				info.Extra[cols[i]] = v
			}
		}
		infos = append(infos, info)
	}

	c.logger.Debug("loaded collection metadata",
		zap.String("path", path),
		zap.Int("networks", len(infos)))
	return infos, nil
}

// ReadyOnly filters metadata entries to networks marked ready for use.
func ReadyOnly(infos []NetworkInfo) []NetworkInfo {
	var out []NetworkInfo
	for _, info := range infos {
		if info.Ready {
			out = append(out, info)
		}
	}
	return out
}

// ListSubnetworks returns the subnetwork files of a network, sorted by
// filename. The directory is scanned on every call, so files added after
// catalog construction are visible immediately.
func (c *Catalog) ListSubnetworks(network string) ([]string, error) {
	dir := filepath.Join(c.root, network, subnetworkDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &UnknownNetworkError{Name: network}
		}
		return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot list %s", dir), Err: err}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SubnetworkExt) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	c.logger.Debug("listed subnetworks",
		zap.String("network", network),
		zap.Int("files", len(files)))
	return files, nil
}

// SubnetworkPath validates that file is a subnetwork of the named network
// and returns its path. Validation is by directory listing only; the file
// itself is not opened.
func (c *Catalog) SubnetworkPath(network, file string) (string, error) {
	files, err := c.ListSubnetworks(network)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f == file {
			return filepath.Join(c.root, network, subnetworkDir, file), nil
		}
	}
	return "", &UnknownSubnetworkError{Network: network, File: file}
}
