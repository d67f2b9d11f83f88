// Package main provides a performance benchmarking tool for the divrank CLI.
// It measures ranking times across datasets and metrics, running each case
// several times without a snapshot cache and several times with the sqlite
// cache, treating the first cached run as cold and averaging the rest as warm.
// Results are written as CSV for later comparison.
//
// Prerequisites:
// - divrank binary installed and available in PATH
// - One or more dataset CSV files in the specified data directory
//
// Usage: go run benchmark/main.go [data-dir]
//
//	data-dir: Directory containing dataset CSV files
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Metric      string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Datasets    []string
	Metrics     []string
	States      map[string]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataDir := os.Args[1]

	datasets, err := findDatasets(dataDir)
	if err != nil {
		fmt.Printf("Failed to list datasets: %v\n", err)
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DataDir:     dataDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Datasets:    datasets,
		Metrics:     []string{"descriptive_gender", "descriptive_race", "blaus_race"},
		States: map[string]string{
			"descriptive_race": "CA,NY,TX",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("divrank", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config.Metrics)
}

// findDatasets returns the CSV files directly under dir, sorted by name.
func findDatasets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// checkPrerequisites verifies that the divrank binary and at least one dataset exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("divrank"); err != nil {
		return fmt.Errorf("divrank binary not found in PATH")
	}
	if len(config.Datasets) == 0 {
		return fmt.Errorf("no CSV datasets found in %s", config.DataDir)
	}
	return nil
}

// runBenchmarks executes every metric against every dataset
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %d metrics, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Datasets), len(config.Metrics), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, dataset := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", dataset)
		dataPath := filepath.Join(config.DataDir, dataset)

		for _, metric := range config.Metrics {
			args := []string{"--metric", metric, "--limit", "0"}
			desc := metric
			if states, ok := config.States[metric]; ok {
				args = append(args, "--state", states)
				desc = fmt.Sprintf("%s (%s)", metric, states)
			}
			results = append(results, runBenchmarkSuite(config, dataset, dataPath, metric, desc, args))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one metric
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataPath, metric, description string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Ranking %s on %s\n", description, dataset)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Metric:      metric,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes divrank rank multiple times with the given cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataPath string, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{"rank", dataPath, "--cache-backend", cacheBackend, "--color", "no"}, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("divrank", args...)

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates a completed ranking
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Ranking completed in") &&
		strings.Contains(outputStr, "Cache backend")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("divrank_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "metric", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Metric, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by metric
func printSummary(results []BenchmarkResult, metrics []string) {
	fmt.Printf("Benchmark complete\n")
	for _, metric := range metrics {
		fmt.Printf("%s:\n", metric)
		for _, result := range results {
			if result.Metric == metric {
				fmt.Printf("  %-28s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
