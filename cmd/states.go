package cmd

import (
	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/spf13/cobra"
)

// statesCmd lists the distinct states present in the dataset.
var statesCmd = &cobra.Command{
	Use:   "states [data-file]",
	Short: "List the distinct states in the dataset",
	Long: `Print every distinct value of the state column, sorted. These are the
values accepted by --state.

Examples:
  divrank states
  divrank states --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStates(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list states", err)
		}
	},
}
