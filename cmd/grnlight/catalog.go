package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grnlab/grnlight/internal/catalog"
	"github.com/grnlab/grnlight/internal/output"
)

// openCatalog builds a catalog from the configured collection root.
func openCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.New(viper.GetString("root"))
	if err != nil {
		return nil, fmt.Errorf("%w (set --root, GRN_PATH, or 'grnlight config set root <path>')", err)
	}
	cat.SetLogger(logger)
	return cat, nil
}

func newNetworksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks of the collection",
		Long:  "List the networks described by the collection metadata. By default only networks marked ready for use are shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog()
			if err != nil {
				return err
			}
			infos, err := cat.LoadMetadata()
			if err != nil {
				return err
			}
			if !all {
				infos = catalog.ReadyOnly(infos)
			}
			return output.WriteNetworks(cmd.OutOrStdout(), infos)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include networks not marked ready")
	return cmd
}

func newSubnetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subnetworks <network>",
		Short: "List the subnetwork files of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog()
			if err != nil {
				return err
			}
			files, err := cat.ListSubnetworks(args[0])
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
