// Package main provides the grnlight command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is the process logger; a no-op unless --verbose is set.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "grnlight",
		Short: "Query curated gene regulatory network collections",
		Long: `grnlight provides lazy, memory-efficient access to collections of
gene regulatory network edge lists stored as Parquet files.

A collection is a directory containing published_networks.csv and one
subdirectory per network, each holding its subnetwork Parquet files
under networks/. Point the tool at a collection with --root, the
GRN_PATH environment variable, or 'grnlight config set root <path>'.`,
		Example: `  grnlight networks
  grnlight subnetworks celloracle_human
  grnlight regulators MYC --network celloracle_human
  grnlight targets GATA1 --network cellnet_human_Hg1332 --subnetwork bcell.parquet
  grnlight dump --network celloracle_human --parquet all_edges.parquet`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(verbose)
		},
	}

	cmd.PersistentFlags().String("root", "", "collection root directory (default: $GRN_PATH or config file)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	viper.BindPFlag("root", cmd.PersistentFlags().Lookup("root"))

	cmd.AddCommand(
		newNetworksCmd(),
		newSubnetworksCmd(),
		newRegulatorsCmd(),
		newTargetsCmd(),
		newDistinctCmd(),
		newDumpCmd(),
		newEdgesCmd(),
		newConfigCmd(),
	)
	return cmd
}

// initialize wires viper sources and the logger. Precedence for the
// collection root: --root flag, then GRN_PATH, then the config file.
func initialize(verbose bool) error {
	viper.BindEnv("root", "GRN_PATH")

	// A missing config file is fine; the flag and env still apply.
	if home, err := os.UserHomeDir(); err == nil {
		cfg := filepath.Join(home, configFileName)
		if _, err := os.Stat(cfg); err == nil {
			viper.SetConfigFile(cfg)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
	}
	return nil
}
