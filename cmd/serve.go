package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/divrank/internal/web"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve [data-file]",
	Short: "Start the diversity ranking dashboard",
	Long: `Serve the ranking dashboard over HTTP.

Routes:
  /               HTML dashboard with metric and state selectors
  /download.csv   The current view as diversity_rankings.csv
  /api/rankings   JSON ranked view (metric, state, limit query params)
  /api/states     JSON state list
  /api/metrics    JSON metric catalogue
  /healthz        Liveness probe

The dataset is loaded once at startup and reused for every request. A missing
or malformed dataset stops the command before it listens.

Examples:
  divrank serve
  divrank serve --addr 127.0.0.1:9000 --data ./institutional_diversity_metric.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := web.NewServer(ctx, cfg, cacheManager, afero.NewOsFs(), nil)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}
