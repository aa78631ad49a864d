package main

import (
	"fmt"

	"github.com/epeers/indexetfs/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "index-etfs",
		Short: "Download and normalize index ETF holdings",
		Long: `index-etfs downloads the daily holdings files published by SSGA, iShares
and Direxion, keeps the USD equity rows and writes one file set per ETF.

Run without a subcommand to refresh every supported ETF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for output files (default: current directory, or HOLDINGS_OUTPUT_DIR)")
	flags.StringVar(&opts.variant, "variant", "full", "output variant: full (ticker, name, weight) or tickers")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "number of ETFs to download at once")

	root.AddCommand(
		newGetCmd(opts),
		newListCmd(),
		newShowCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// runAll refreshes every registered ETF into the configured output directory
func runAll(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, wc := services.NewWarningContext(cmd.Context())
	results, err := a.svc.RunAllConcurrent(ctx, cfg.OutputDir, cfg.Concurrency)
	logWarnings(wc.GetWarnings())
	if err != nil {
		return err
	}

	for _, symbol := range a.svc.Registry().Symbols() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-5s %5d holdings\n", symbol, results[symbol].Len())
	}
	return nil
}
