// Package schema has models, constants and helpers shared by all parts of divrank.
package schema

import (
	"slices"
	"time"
)

// Proportions maps a category label (e.g. "female", "white_nh") to its share in [0, 1].
type Proportions map[string]float64

// Get returns the share for a label, defaulting to 0 when absent.
func (p Proportions) Get(label string) float64 {
	return p[label]
}

// Institution is one row of the dataset after normalization.
type Institution struct {
	Institution       string                `json:"institution"`
	City              string                `json:"city"`
	State             string                `json:"state"`
	GenderProportions Proportions           `json:"gender_proportions"`
	RaceProportions   Proportions           `json:"race_proportions"`
	Scores            map[MetricKey]float64 `json:"scores"` // absent key means missing
	PercentFemale     float64               `json:"percent_female"`
	PercentOfColor    float64               `json:"percent_of_color"`
}

// Score returns the metric value and whether it is present.
func (i Institution) Score(key MetricKey) (float64, bool) {
	v, ok := i.Scores[key]
	return v, ok
}

// Table is the loaded, read-only dataset.
type Table struct {
	Source   string        `json:"source"`
	Columns  []MetricKey   `json:"columns"` // metric columns present in the header
	Records  []Institution `json:"records"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// HasMetric reports whether the metric column was present in the source file.
func (t *Table) HasMetric(key MetricKey) bool {
	return slices.Contains(t.Columns, key)
}

// States returns the distinct state values in ascending order.
func (t *Table) States() []string {
	seen := make(map[string]struct{})
	states := make([]string, 0)
	for _, rec := range t.Records {
		if _, ok := seen[rec.State]; ok {
			continue
		}
		seen[rec.State] = struct{}{}
		states = append(states, rec.State)
	}
	slices.Sort(states)
	return states
}
