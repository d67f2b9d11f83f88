package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/iocache"
	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rankConfig(path string) *contract.Config {
	return &contract.Config{
		DataPath:  path,
		Metric:    schema.DescriptiveGender,
		States:    []string{},
		Precision: contract.DefaultPrecision,
		Output:    schema.TextOut,
	}
}

func historyManager(history *iocache.MockHistoryStore) *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)
	return mgr
}

// TestGetRankResultsRecordsHistory tests that a run is tracked from begin to end.
func TestGetRankResultsRecordsHistory(t *testing.T) {
	fs, path := writeDataset(t, sampleCSV)
	cfg := rankConfig(path)
	cfg.ResultLimit = 2

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, schema.DescriptiveGender, cfg.States, mock.MatchedBy(func(p map[string]any) bool {
		return p["source"] == "mcp" && p["metric"] == "descriptive_gender"
	})).Return(int64(7), nil)
	history.On("RecordRows", int64(7), mock.MatchedBy(func(rows []schema.RankedRow) bool { return len(rows) == 2 })).Return(nil)
	history.On("EndRun", int64(7), mock.Anything, 3).Return(nil)

	ctx := WithRunSource(WithSuppressHeader(context.Background()), "mcp")
	view, err := GetRankResults(ctx, cfg, NewDataset(fs, path, nil), historyManager(history))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, institutions(view))
	history.AssertExpectations(t)
}

// TestGetRankResultsHistoryFailure tests that tracking errors never fail the ranking.
func TestGetRankResultsHistoryFailure(t *testing.T) {
	fs, path := writeDataset(t, sampleCSV)
	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	ctx := WithSuppressHeader(context.Background())
	view, err := GetRankResults(ctx, rankConfig(path), NewDataset(fs, path, nil), historyManager(history))
	require.NoError(t, err)
	assert.Len(t, view.Rows, 3)
	history.AssertNotCalled(t, "RecordRows", mock.Anything, mock.Anything)
}

// TestGetRankResultsErrors tests that load and metric errors propagate without tracking.
func TestGetRankResultsErrors(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	t.Run("unknown metric", func(t *testing.T) {
		fs, path := writeDataset(t, sampleCSV)
		cfg := rankConfig(path)
		cfg.Metric = "made_up"
		history := &iocache.MockHistoryStore{}
		_, err := GetRankResults(ctx, cfg, NewDataset(fs, path, nil), historyManager(history))
		assert.ErrorIs(t, err, ErrUnknownMetric)
		history.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable data", func(t *testing.T) {
		fs, _ := writeDataset(t, sampleCSV)
		_, err := GetRankResults(ctx, rankConfig("/nope.csv"), NewDataset(fs, "/nope.csv", nil), nil)
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})
}

// TestBuildMetricsModel tests catalogue availability and per-metric counts.
func TestBuildMetricsModel(t *testing.T) {
	model := BuildMetricsModel(loadSample(t))
	assert.Equal(t, schema.AppTitle, model.Title)
	assert.Equal(t, 3, model.Total)
	require.Len(t, model.Metrics, len(schema.AllMetrics))

	byKey := make(map[schema.MetricKey]schema.MetricInfo)
	for _, m := range model.Metrics {
		byKey[m.Key] = m
	}
	assert.True(t, byKey[schema.DescriptiveGender].Available)
	assert.Equal(t, 3, byKey[schema.DescriptiveGender].Scored)
	assert.Equal(t, 2, byKey[schema.DescriptiveRace].Scored)
	assert.False(t, byKey[schema.BlausRace].Available)
	assert.Zero(t, byKey[schema.BlausRace].Scored)
}

// TestExecuteRankCSV tests the rank command end to end with a csv export.
func TestExecuteRankCSV(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(sampleCSV), 0o644))

	cfg := rankConfig(dataPath)
	cfg.States = []string{"CA"}
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(dir, schema.ExportFileName)

	require.NoError(t, ExecuteRank(WithSuppressHeader(context.Background()), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(schema.RankedColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,A,Los Angeles,CA,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,B,San Diego,CA,"))
}

// TestExecuteStatesJSON tests the states listing.
func TestExecuteStatesJSON(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(sampleCSV), 0o644))

	cfg := rankConfig(dataPath)
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(dir, "states.json")
	require.NoError(t, ExecuteStates(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"CA"`)
	assert.Contains(t, string(data), `"NY"`)
}
