package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
	"github.com/spf13/afero"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// maxSnapshotAge is how long a cached snapshot is trusted.
const maxSnapshotAge = 7 * 24 * time.Hour

// cachedLoadTable loads the dataset, going through the snapshot store when one is configured.
func cachedLoadTable(fs afero.Fs, path string, mgr contract.CacheManager) (*schema.Table, error) {
	if mgr == nil {
		return LoadTable(fs, path)
	}
	snapshots := mgr.GetSnapshotStore()
	if snapshots == nil {
		// Fallback to direct load
		return LoadTable(fs, path)
	}

	key, err := generateCacheKey(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	if table := checkCacheHit(snapshots, key); table != nil {
		return table, nil
	}
	return computeAndStore(fs, path, snapshots, key)
}

// checkCacheHit attempts to retrieve and validate a cached table
func checkCacheHit(snapshots contract.CacheStore, key string) *schema.Table {
	data, version, ts, err := snapshots.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > maxSnapshotAge {
		return nil // stale or version mismatch
	}
	var table schema.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil
	}
	return &table
}

// computeAndStore loads the table from disk and stores it in cache.
// A failed load is never cached.
func computeAndStore(fs afero.Fs, path string, snapshots contract.CacheStore, key string) (*schema.Table, error) {
	table, err := LoadTable(fs, path)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(table); err == nil {
		if err := snapshots.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store dataset snapshot", err)
		}
	}
	return table, nil
}

// generateCacheKey identifies one version of the file by path, size and modification time.
func generateCacheKey(fs afero.Fs, path string) (string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	key := fmt.Sprintf("%s:%d:%d:%d",
		absPath,
		info.Size(),
		info.ModTime().UnixNano(),
		currentCacheVersion,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
