// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/divrank/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking ranking runs and their rows.
type HistoryStore interface {
	// BeginRun creates a new ranking run and returns its unique ID
	BeginRun(startTime time.Time, metric schema.MetricKey, states []string, configParams map[string]any) (int64, error)

	// RecordRows stores the ranked rows produced by a run
	RecordRows(runID int64, rows []schema.RankedRow) error

	// EndRun updates the ranking run with completion data
	EndRun(runID int64, endTime time.Time, totalRows int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every stored ranking run
	GetAllRuns() ([]schema.RankingRunRecord, error)

	// GetAllRows retrieves every stored ranked row
	GetAllRows() ([]schema.RankingRowRecord, error)

	// Close closes the underlying connection
	Close() error
}
