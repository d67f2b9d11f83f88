package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *schema.RankedView {
	return &schema.RankedView{
		Metric: schema.DescriptiveGender,
		Label:  "Descriptive (Gender)",
		States: []string{"CA", "NY"},
		Rows: []schema.RankedRow{
			{Rank: 1, Institution: "C", City: "New York", State: "NY", DiversityScore: 90.126, PercentFemale: 50, PercentOfColor: 80},
			{Rank: 2, Institution: "A, Campus \"Main\"", City: "Los Angeles", State: "CA", DiversityScore: 0.1 + 0.2, PercentFemale: 60.01, PercentOfColor: 50},
		},
	}
}

func testConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:       output,
		OutputFile:   outputFile,
		Precision:    2,
		Width:        120,
		CacheBackend: schema.NoneBackend,
	}
}

// TestWriteRankedCSVRoundTrip tests that an export parses back to the same rows.
func TestWriteRankedCSVRoundTrip(t *testing.T) {
	view := sampleView()
	var buf bytes.Buffer
	require.NoError(t, WriteRankedCSV(&buf, view.Rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(view.Rows)+1)
	assert.Equal(t, schema.RankedColumns, records[0])

	for i, rec := range records[1:] {
		want := view.Rows[i]
		rank, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		score, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		female, err := strconv.ParseFloat(rec[5], 64)
		require.NoError(t, err)
		ofColor, err := strconv.ParseFloat(rec[6], 64)
		require.NoError(t, err)

		assert.Equal(t, want, schema.RankedRow{
			Rank:           rank,
			Institution:    rec[1],
			City:           rec[2],
			State:          rec[3],
			DiversityScore: score,
			PercentFemale:  female,
			PercentOfColor: ofColor,
		})
	}
}

// TestWriteRankedCSVEmpty tests that an empty view still has a header.
func TestWriteRankedCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRankedCSV(&buf, nil))
	assert.Equal(t, strings.Join(schema.RankedColumns, ",")+"\n", buf.String())
}

// TestWriteRankingsFormats tests each output format written to a file.
func TestWriteRankingsFormats(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	dir := t.TempDir()

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "rank.txt")
		require.NoError(t, WriteRankings(sampleView(), testConfig(schema.TextOut, path), time.Second))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, schema.AppTitle)
		assert.Contains(t, out, "Top Institutions by Descriptive (Gender)")
		assert.Contains(t, out, "90.13")
		assert.Contains(t, out, "New York")
		assert.Contains(t, out, "Showing 2 institutions in CA, NY")
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "rank.json")
		require.NoError(t, WriteRankings(sampleView(), testConfig(schema.JSONOut, path), time.Second))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got schema.RankedView
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, *sampleView(), got)
	})

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(dir, schema.ExportFileName)
		require.NoError(t, WriteRankings(sampleView(), testConfig(schema.CSVOut, path), time.Second))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "rank,institution,city,state,diversity_score,percent_female,percent_of_color\n"))
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(dir, "rank.parquet")
		require.NoError(t, WriteRankings(sampleView(), testConfig(schema.ParquetOut, path), time.Second))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
	})
}

// TestWriteStates tests the state listing formats.
func TestWriteStates(t *testing.T) {
	model := schema.StatesRenderModel{Source: "data.csv", States: []string{"CA", "NY"}}
	dir := t.TempDir()

	path := filepath.Join(dir, "states.csv")
	require.NoError(t, WriteStates(model, testConfig(schema.CSVOut, path)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "state\nCA\nNY\n", string(data))

	path = filepath.Join(dir, "states.txt")
	require.NoError(t, WriteStates(model, testConfig(schema.TextOut, path)))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2 states in data.csv")
}

// TestWriteMetrics tests the metric listing formats.
func TestWriteMetrics(t *testing.T) {
	model := schema.MetricsRenderModel{
		Title:  schema.AppTitle,
		Source: "data.csv",
		Total:  3,
		Metrics: []schema.MetricInfo{
			{Label: "Descriptive (Gender)", Key: schema.DescriptiveGender, Available: true, Scored: 3},
			{Label: "Blau Index (Race)", Key: schema.BlausRace},
		},
	}
	dir := t.TempDir()

	path := filepath.Join(dir, "metrics.csv")
	require.NoError(t, WriteMetrics(model, testConfig(schema.CSVOut, path)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "label,key,available,scored\nDescriptive (Gender),descriptive_gender,true,3\nBlau Index (Race),blaus_race,false,0\n", string(data))

	path = filepath.Join(dir, "metrics.txt")
	require.NoError(t, WriteMetrics(model, testConfig(schema.TextOut, path)))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "descriptive_gender")
	assert.Contains(t, string(data), "3 institutions")
}
