package schema

import "time"

// RankingRunRecord represents a row from the divrank_ranking_runs table.
type RankingRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	Metric        string
	States        string // comma-joined, empty means all states
	TotalRows     int32
	ConfigParams  *string
}

// RankingRowRecord represents a row from the divrank_ranking_rows table.
type RankingRowRecord struct {
	RunID          int64
	Rank           int32
	Institution    string
	City           string
	State          string
	DiversityScore float64
	PercentFemale  float64
	PercentOfColor float64
}
