package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/writer"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "show SYMBOL",
		Short: "Print the top holdings from a previously written CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			etf, err := registry.Default().Resolve(args[0])
			if err != nil {
				return err
			}

			dir := cfg.OutputDir
			if dir == "" {
				dir = "."
			}
			holdings, err := writer.ReadRankedCSV(filepath.Join(dir, etf.Symbol+".csv"))
			if err != nil {
				return fmt.Errorf("no saved holdings for %s (run `index-etfs get %s` first): %w", etf.Symbol, etf.Symbol, err)
			}

			if top > 0 && top < len(holdings) {
				holdings = holdings[:top]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d shown)\n", strings.ToUpper(etf.Symbol), len(holdings))
			for _, h := range holdings {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-8s %8.4f  %s\n", h.Rank, h.Ticker, h.Weight, h.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "number of holdings to print (0 for all)")
	return cmd
}
