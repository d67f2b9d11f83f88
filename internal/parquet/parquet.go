// Package parquet provides data structures and functions for exporting
// rankings and ranking history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/divrank/schema"
	"github.com/parquet-go/parquet-go"
)

// RankedRow is one row of a ranked view.
type RankedRow struct {
	Rank           int32   `parquet:"rank,snappy"`
	Institution    string  `parquet:"institution,snappy,dict"`
	City           string  `parquet:"city,snappy,dict"`
	State          string  `parquet:"state,snappy,dict"`
	DiversityScore float64 `parquet:"diversity_score,snappy"`
	PercentFemale  float64 `parquet:"percent_female,snappy"`
	PercentOfColor float64 `parquet:"percent_of_color,snappy"`
}

// RankingRun represents a single recorded ranking run with metadata.
// This struct maps to the divrank_ranking_runs database table.
type RankingRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	Metric string `parquet:"metric,snappy,dict"`

	// States is the comma-separated state filter, empty for all states
	States string `parquet:"states,snappy"`

	// TotalRows is how many institutions qualified before any limit
	TotalRows int32 `parquet:"total_rows,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RankingRow is one ranked row stored for a run.
// This struct maps to the divrank_ranking_rows database table.
type RankingRow struct {
	RunID          int64   `parquet:"run_id,snappy"`
	Rank           int32   `parquet:"rank,snappy"`
	Institution    string  `parquet:"institution,snappy,dict"`
	City           string  `parquet:"city,snappy,dict"`
	State          string  `parquet:"state,snappy,dict"`
	DiversityScore float64 `parquet:"diversity_score,snappy"`
	PercentFemale  float64 `parquet:"percent_female,snappy"`
	PercentOfColor float64 `parquet:"percent_of_color,snappy"`
}

// WriteRankedRows writes ranked rows as a Parquet stream to w.
func WriteRankedRows(w io.Writer, rows []schema.RankedRow) error {
	return writeRecords(w, ConvertRankedRows(rows))
}

// WriteRankingRunsParquet writes a slice of RankingRun structs to a Parquet file.
func WriteRankingRunsParquet(data []RankingRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRankingRowsParquet writes a slice of RankingRow structs to a Parquet file.
func WriteRankingRowsParquet(data []RankingRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// writeFile creates outputPath and writes data into it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRecords(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// writeRecords encodes data with a schema derived from the struct tags of T.
func writeRecords[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ConvertRankedRows converts ranked rows to their Parquet form.
func ConvertRankedRows(rows []schema.RankedRow) []RankedRow {
	out := make([]RankedRow, len(rows))
	for i, r := range rows {
		out[i] = RankedRow{
			Rank:           int32(r.Rank),
			Institution:    r.Institution,
			City:           r.City,
			State:          r.State,
			DiversityScore: r.DiversityScore,
			PercentFemale:  r.PercentFemale,
			PercentOfColor: r.PercentOfColor,
		}
	}
	return out
}

// ConvertRankingRunRecords converts stored run records to their Parquet form.
func ConvertRankingRunRecords(records []schema.RankingRunRecord) []RankingRun {
	out := make([]RankingRun, len(records))
	for i, r := range records {
		out[i] = RankingRun{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			Metric:        r.Metric,
			States:        r.States,
			TotalRows:     r.TotalRows,
			ConfigParams:  r.ConfigParams,
		}
	}
	return out
}

// ConvertRankingRowRecords converts stored row records to their Parquet form.
func ConvertRankingRowRecords(records []schema.RankingRowRecord) []RankingRow {
	out := make([]RankingRow, len(records))
	for i, r := range records {
		out[i] = RankingRow{
			RunID:          r.RunID,
			Rank:           r.Rank,
			Institution:    r.Institution,
			City:           r.City,
			State:          r.State,
			DiversityScore: r.DiversityScore,
			PercentFemale:  r.PercentFemale,
			PercentOfColor: r.PercentOfColor,
		}
	}
	return out
}
