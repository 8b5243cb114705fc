package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/grnlab/grnlight/internal/catalog"
)

// WriteNetworks writes collection metadata as a tab-delimited table.
func WriteNetworks(w io.Writer, infos []catalog.NetworkInfo) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("name\tis_ready\tdescription\n"); err != nil {
		return err
	}
	for _, info := range infos {
		ready := "no"
		if info.Ready {
			ready = "yes"
		}
		desc := info.Description
		if desc == "" {
			desc = "-"
		}
		row := []string{info.Name, ready, desc}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
