package schema

// RankedRow is one projected row of a ranked view.
type RankedRow struct {
	Rank           int     `json:"rank"`
	Institution    string  `json:"institution"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	DiversityScore float64 `json:"diversity_score"`
	PercentFemale  float64 `json:"percent_female"`
	PercentOfColor float64 `json:"percent_of_color"`
}

// RankedView is the result of one ranking query.
type RankedView struct {
	Metric MetricKey   `json:"metric"`
	Label  string      `json:"label"`
	States []string    `json:"states"`
	Rows   []RankedRow `json:"rows"`
}

// Limit returns a copy of the view keeping at most n rows. Ranks are untouched,
// so a limited view is always a prefix of the full one. n <= 0 keeps everything.
func (v *RankedView) Limit(n int) *RankedView {
	out := *v
	if n > 0 && len(v.Rows) > n {
		out.Rows = v.Rows[:n]
	}
	return &out
}

// MetricInfo describes one catalogue entry together with dataset availability.
type MetricInfo struct {
	Label     string    `json:"label"`
	Key       MetricKey `json:"key"`
	Available bool      `json:"available"`
	Scored    int       `json:"scored"` // records with a value for this metric
}

// MetricsRenderModel is the full metrics listing.
type MetricsRenderModel struct {
	Title   string       `json:"title"`
	Source  string       `json:"source"`
	Total   int          `json:"total_records"`
	Metrics []MetricInfo `json:"metrics"`
}

// StatesRenderModel is the distinct state listing.
type StatesRenderModel struct {
	Source string   `json:"source"`
	States []string `json:"states"`
}
