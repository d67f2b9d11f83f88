package cmd

import (
	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd ranks institutions by one diversity metric.
var rankCmd = &cobra.Command{
	Use:   "rank [data-file]",
	Short: "Rank institutions by a diversity metric",
	Long: `Rank every institution that has a value for the chosen metric, highest
score first. Ties are broken by institution name so output is deterministic.

Each row shows the rank, institution, city, state, the metric value as
diversity_score, and the derived percent_female and percent_of_color.
Institutions with no value for the metric are left out.

Examples:
  # Default metric over every state
  divrank rank

  # Race representation in two states, top 20
  divrank rank --metric representative_race --state CA,NY --limit 20

  # Metric labels work too
  divrank rank --metric "Blau Index (Gender)"

  # Save the same export the dashboard offers
  divrank rank --output csv --output-file diversity_rankings.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot rank institutions", err)
		}
	},
}
