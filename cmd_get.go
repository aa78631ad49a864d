package main

import (
	"fmt"

	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/services"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get SYMBOL...",
		Short: "Download and write holdings for the given ETFs",
		Example: `  index-etfs get spy qqq
  index-etfs get IWM --variant tickers -o ./holdings`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			// Reject typos before any download starts
			for _, symbol := range args {
				if _, err := registry.Default().Resolve(symbol); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, wc := services.NewWarningContext(cmd.Context())
			defer func() { logWarnings(wc.GetWarnings()) }()

			for _, symbol := range args {
				table, err := a.svc.GetETFHoldings(ctx, symbol, cfg.OutputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %5d holdings\n", symbol, table.Len())
			}
			return nil
		},
	}
}
