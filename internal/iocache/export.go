package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/parquet"
)

// ExecuteHistoryExport exports the ranking history to a pair of Parquet files
// named after outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no ranking history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total ranking runs: %d\n", status.TotalRuns)
	fmt.Printf("Total ranked rows: %d\n", status.TableSizes[rankingRowsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking runs: %w", err)
	}
	rows, err := store.GetAllRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranked rows: %w", err)
	}

	parquetRuns := parquet.ConvertRankingRunRecords(runs)
	parquetRows := parquet.ConvertRankingRowRecords(rows)

	runsFile := outputFile + ".ranking_runs.parquet"
	if err := parquet.WriteRankingRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write ranking runs: %w", err)
	}
	fmt.Printf("Exported %d ranking runs to: %s\n", len(parquetRuns), runsFile)

	rowsFile := outputFile + ".ranking_rows.parquet"
	if err := parquet.WriteRankingRowsParquet(parquetRows, rowsFile); err != nil {
		return fmt.Errorf("failed to write ranked rows: %w", err)
	}
	fmt.Printf("Exported %d ranked rows to: %s\n", len(parquetRows), rowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
