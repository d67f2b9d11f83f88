package cmd

import (
	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the metric catalogue.
var metricsCmd = &cobra.Command{
	Use:   "metrics [data-file]",
	Short: "Display the diversity metric catalogue",
	Long: `Show every metric divrank knows about, with its label and dataset key,
whether the loaded dataset carries that column, and how many institutions
have a value for it.

Either the key or the label can be passed to --metric.

Examples:
  divrank metrics
  divrank metrics --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
