package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
)

// Table names for ranking history.
const (
	rankingRunsTable = "divrank_ranking_runs"
	rankingRowsTable = "divrank_ranking_rows"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the ranking history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{rankingRunsTable, getCreateRankingRunsQuery(backend)},
		{rankingRowsTable, getCreateRankingRowsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRankingRunsQuery returns the CREATE TABLE query for divrank_ranking_runs.
func getCreateRankingRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(rankingRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				metric VARCHAR(64) NOT NULL,
				states TEXT NOT NULL,
				total_rows INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				metric TEXT NOT NULL,
				states TEXT NOT NULL,
				total_rows INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				metric TEXT NOT NULL,
				states TEXT NOT NULL,
				total_rows INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRankingRowsQuery returns the CREATE TABLE query for divrank_ranking_rows.
func getCreateRankingRowsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(rankingRowsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				rank_position INT NOT NULL,
				institution VARCHAR(512) NOT NULL,
				city VARCHAR(255) NOT NULL,
				state VARCHAR(64) NOT NULL,
				diversity_score DOUBLE NOT NULL,
				percent_female DOUBLE NOT NULL,
				percent_of_color DOUBLE NOT NULL,
				PRIMARY KEY (run_id, rank_position)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				rank_position INT NOT NULL,
				institution TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				diversity_score DOUBLE PRECISION NOT NULL,
				percent_female DOUBLE PRECISION NOT NULL,
				percent_of_color DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, rank_position)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				rank_position INTEGER NOT NULL,
				institution TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				diversity_score REAL NOT NULL,
				percent_female REAL NOT NULL,
				percent_of_color REAL NOT NULL,
				PRIMARY KEY (run_id, rank_position)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new ranking run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, metric schema.MetricKey, states []string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(rankingRunsTable, hs.backend)
	args := []any{formatTime(startTime, hs.backend), string(metric), schema.FormatStates(states), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, metric, states, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, metric, states, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert ranking run: %w", err)
	}
	return runID, nil
}

// RecordRows stores the ranked rows of a run in one transaction.
func (hs *HistoryStoreImpl) RecordRows(runID int64, rows []schema.RankedRow) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil || len(rows) == 0 {
		return nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (run_id, rank_position, institution, city, state, diversity_score, percent_female, percent_of_color) VALUES (%s)`,
		quoteTableName(rankingRowsTable, hs.backend), placeholders(hs.backend, 8))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.Exec(runID, r.Rank, r.Institution, r.City, r.State, r.DiversityScore, r.PercentFemale, r.PercentOfColor); err != nil {
			return fmt.Errorf("failed to insert rank %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ranked rows: %w", err)
	}
	return nil
}

// EndRun updates the ranking run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalRows int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(rankingRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_rows = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1),
		placeholder(hs.backend, 2),
		placeholder(hs.backend, 3),
		placeholder(hs.backend, 4),
	)
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalRows, runID); err != nil {
		return fmt.Errorf("failed to update ranking run: %w", err)
	}
	return nil
}

// scanTime reads a single time column, handling the SQLite text encoding.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(rankingRunsTable, hs.backend)

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		status.LastRunTime, err = hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.OldestRunTime, err = hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_rows), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalRowsRanked); err != nil {
			return status, fmt.Errorf("failed to get total rows ranked: %w", err)
		}
	}

	for _, table := range []string{rankingRunsTable, rankingRowsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all ranking runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RankingRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, metric, states, total_rows, config_params FROM %s ORDER BY run_id",
		quoteTableName(rankingRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RankingRunRecord
	for rows.Next() {
		var record schema.RankingRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.Metric, &record.States, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan ranking run: %w", err)
			}
			startTime, err := parseTime(startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.Metric, &record.States, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan ranking run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking runs: %w", err)
	}
	return results, nil
}

// GetAllRows retrieves all ranked rows from the store.
func (hs *HistoryStoreImpl) GetAllRows() ([]schema.RankingRowRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, rank_position, institution, city, state, diversity_score, percent_female, percent_of_color
		FROM %s ORDER BY run_id, rank_position`, quoteTableName(rankingRowsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RankingRowRecord
	for rows.Next() {
		var r schema.RankingRowRecord
		if err := rows.Scan(&r.RunID, &r.Rank, &r.Institution, &r.City, &r.State, &r.DiversityScore, &r.PercentFemale, &r.PercentOfColor); err != nil {
			return nil, fmt.Errorf("failed to scan ranked row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranked rows: %w", err)
	}
	return results, nil
}
