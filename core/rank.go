package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/divrank/core/algo"
	"github.com/huangsam/divrank/schema"
)

// RankTable ranks the institutions of table by metric.
//
// Only rows whose state is in states take part; an empty states list means
// every state. Rows with no value for metric are left out. The result is
// ordered by score descending then institution ascending, numbered from 1.
// Table columns only ever hold catalogue keys, so a metric that is not in
// the catalogue or not in the file both return ErrUnknownMetric.
func RankTable(table *schema.Table, metric schema.MetricKey, states []string) (*schema.RankedView, error) {
	if !table.HasMetric(metric) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	candidates := make([]algo.Candidate, 0, len(table.Records))
	for _, rec := range table.Records {
		if len(states) > 0 && !slices.Contains(states, rec.State) {
			continue
		}
		score, ok := rec.Score(metric)
		if !ok {
			continue
		}
		candidates = append(candidates, algo.Candidate{Record: rec, Score: score})
	}

	viewStates := slices.Clone(states)
	if viewStates == nil {
		viewStates = []string{}
	}

	return &schema.RankedView{
		Metric: metric,
		Label:  schema.MetricLabel(metric),
		States: viewStates,
		Rows:   algo.RankCandidates(candidates, 0),
	}, nil
}
