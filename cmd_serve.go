package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/epeers/indexetfs/internal/handlers"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the holdings API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var snapshots handlers.SnapshotReader
			if a.repo != nil {
				snapshots = a.repo
			}

			if cfg.LogLevel < log.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}
			router := handlers.NewRouter(handlers.NewHoldingsHandler(a.svc, snapshots, cfg.OutputDir, cfg.Concurrency))

			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: router,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Infof("Starting server on port %s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Wait for an interrupt (the command context) or a listener failure
			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}
			log.Info("Shutting down server...")

			// Give outstanding requests 5 seconds to complete
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			log.Info("Server exited")
			return nil
		},
	}
}
