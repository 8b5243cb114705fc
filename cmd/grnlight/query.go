package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grnlab/grnlight/internal/grn"
	"github.com/grnlab/grnlight/internal/output"
)

// sourceFlags selects the backing sources of a query: either a named
// network (optionally restricted to some of its subnetworks) or an
// explicit list of Parquet files.
type sourceFlags struct {
	network     string
	subnetworks []string
	files       []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.network, "network", "n", "", "network name from the collection")
	cmd.Flags().StringArrayVarP(&f.subnetworks, "subnetwork", "s", nil, "restrict to a subnetwork file (repeatable; requires --network)")
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "query an explicit Parquet file (repeatable; bypasses the collection)")
}

func (f *sourceFlags) open() (*grn.LightNetwork, error) {
	switch {
	case f.network != "" && len(f.files) > 0:
		return nil, errors.New("--network and --file are mutually exclusive")
	case f.network != "":
		cat, err := openCatalog()
		if err != nil {
			return nil, err
		}
		net, err := grn.Open(cat, f.network, f.subnetworks...)
		if err != nil {
			return nil, err
		}
		net.SetLogger(logger)
		return net, nil
	case len(f.files) > 0:
		if len(f.subnetworks) > 0 {
			return nil, errors.New("--subnetwork requires --network")
		}
		net, err := grn.OpenFiles(f.files)
		if err != nil {
			return nil, err
		}
		net.SetLogger(logger)
		return net, nil
	default:
		return nil, errors.New("one of --network or --file is required")
	}
}

// writeRecords writes records as a tab-delimited table to path, or to
// stdout when path is empty.
func writeRecords(cmd *cobra.Command, path string, records []grn.Record) error {
	w := cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return output.NewTabWriter(w).WriteAll(records)
}

func newRegulatorsCmd() *cobra.Command {
	var src sourceFlags
	var outFile string

	cmd := &cobra.Command{
		Use:   "regulators <target-gene>",
		Short: "List records whose target equals the given gene",
		Long:  "List every record regulating the given target gene, across all selected sources. Matching is case-sensitive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := src.open()
			if err != nil {
				return err
			}
			defer net.Close()

			records, err := net.GetRegulators(args[0])
			if err != nil {
				return err
			}
			return writeRecords(cmd, outFile, records)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newTargetsCmd() *cobra.Command {
	var src sourceFlags
	var outFile string

	cmd := &cobra.Command{
		Use:   "targets <regulator-gene>",
		Short: "List records whose regulator equals the given gene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := src.open()
			if err != nil {
				return err
			}
			defer net.Close()

			records, err := net.GetTargets(args[0])
			if err != nil {
				return err
			}
			return writeRecords(cmd, outFile, records)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newDistinctCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:       "distinct <regulator|target>",
		Short:     "List the distinct genes of one column across the selected sources",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"regulator", "target"},
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := src.open()
			if err != nil {
				return err
			}
			defer net.Close()

			values, err := net.Distinct(args[0])
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

func newDumpCmd() *cobra.Command {
	var src sourceFlags
	var outFile, parquetFile string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Materialize the full union of the selected sources",
		Long: `Materialize every record of the selected sources, as a tab-delimited
table or a single Parquet file (--parquet). This loads all matching data
and can be memory-heavy on large collections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := src.open()
			if err != nil {
				return err
			}
			defer net.Close()

			if parquetFile != "" {
				return net.SaveParquet(parquetFile)
			}

			records, err := net.GetAll()
			if err != nil {
				return err
			}
			return writeRecords(cmd, outFile, records)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&parquetFile, "parquet", "", "write a Parquet file instead of tab output")
	return cmd
}

func newEdgesCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Count the records of the selected sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := src.open()
			if err != nil {
				return err
			}
			defer net.Close()

			count, err := net.NumEdges()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	src.register(cmd)
	return cmd
}
