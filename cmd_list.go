package main

import (
	"fmt"

	"github.com/epeers/indexetfs/internal/registry"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported ETFs and their providers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, cfg := range registry.Default().All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %-9s %s\n", cfg.Symbol, cfg.Provider, cfg.URL)
			}
		},
	}
}
