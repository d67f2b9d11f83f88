// Package core has the core logic for loading, ranking and listing institutions.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/outwriter"
	"github.com/huangsam/divrank/schema"
	"github.com/spf13/afero"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteRank ranks institutions by the configured metric and writes the view.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	ds := NewDataset(afero.NewOsFs(), cfg.DataPath, mgr)
	view, err := GetRankResults(ctx, cfg, ds, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteRankings(view, cfg, time.Since(start))
}

// ExecuteStates lists the distinct states of the dataset.
func ExecuteStates(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	table, err := NewDataset(afero.NewOsFs(), cfg.DataPath, mgr).Table(ctx)
	if err != nil {
		return err
	}
	return outwriter.WriteStates(schema.StatesRenderModel{Source: table.Source, States: table.States()}, cfg)
}

// ExecuteMetrics lists the metric catalogue and how many rows each metric scores.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	table, err := NewDataset(afero.NewOsFs(), cfg.DataPath, mgr).Table(ctx)
	if err != nil {
		return err
	}
	return outwriter.WriteMetrics(BuildMetricsModel(table), cfg)
}

// GetRankResults loads the dataset behind ds and ranks it by cfg.Metric and
// cfg.States, keeping the top cfg.ResultLimit rows. When a history store is
// configured the run is recorded; tracking failures are only logged.
func GetRankResults(ctx context.Context, cfg *contract.Config, ds *Dataset, mgr contract.CacheManager) (*schema.RankedView, error) {
	if !shouldSuppressHeader(ctx) {
		logRankHeader(cfg)
	}

	table, err := ds.Table(ctx)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	full, err := RankTable(table, cfg.Metric, cfg.States)
	if err != nil {
		return nil, err
	}
	view := full.Limit(cfg.ResultLimit)

	if mgr != nil {
		recordRun(ctx, cfg, mgr.GetHistoryStore(), startTime, view, len(full.Rows))
	}
	return view, nil
}

// recordRun stores one ranking run in the history store, if configured.
// Failures are logged and never fail the ranking.
func recordRun(ctx context.Context, cfg *contract.Config, history contract.HistoryStore, startTime time.Time, view *schema.RankedView, totalRows int) {
	if history == nil {
		return
	}
	params := cfg.ConfigParams()
	params["source"] = runSource(ctx)

	runID, err := history.BeginRun(startTime, cfg.Metric, cfg.States, params)
	if err != nil {
		contract.LogWarn("Ranking history initialization failed", err)
		return
	}
	if runID <= 0 {
		return
	}
	if err := history.RecordRows(runID, view.Rows); err != nil {
		contract.LogWarn("Failed to record ranked rows", err)
	}
	if err := history.EndRun(runID, time.Now(), totalRows); err != nil {
		contract.LogWarn("Failed to finalize ranking history", err)
	}
}

// BuildMetricsModel pairs the metric catalogue with what the table actually holds.
func BuildMetricsModel(table *schema.Table) schema.MetricsRenderModel {
	metrics := make([]schema.MetricInfo, 0, len(schema.AllMetrics))
	for _, m := range schema.AllMetrics {
		info := schema.MetricInfo{Label: m.Label, Key: m.Key, Available: table.HasMetric(m.Key)}
		if info.Available {
			for _, rec := range table.Records {
				if _, ok := rec.Score(m.Key); ok {
					info.Scored++
				}
			}
		}
		metrics = append(metrics, info)
	}
	return schema.MetricsRenderModel{
		Title:   schema.AppTitle,
		Source:  table.Source,
		Total:   len(table.Records),
		Metrics: metrics,
	}
}

// logRankHeader prints a concise, 2-line header for a ranking run.
// It goes to stderr so piped csv and json output stay clean.
func logRankHeader(cfg *contract.Config) {
	fmt.Fprintf(os.Stderr, "🔎 Dataset: %s (Metric: %s)\n", cfg.DataPath, schema.MetricLabel(cfg.Metric))
	fmt.Fprintf(os.Stderr, "🗺️  States: %s\n", schema.DescribeStates(cfg.States))
}
