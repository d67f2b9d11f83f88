package core

import (
	"context"
	"sync"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
	"github.com/spf13/afero"
)

// Dataset is a lazily loaded, shared handle to one dataset file.
//
// The first call to Table loads the file (or reads it from the snapshot
// cache); every later call, from any goroutine, gets the same table or the
// same error. The table is never mutated after load.
type Dataset struct {
	fs   afero.Fs
	path string
	mgr  contract.CacheManager

	once  sync.Once
	table *schema.Table
	err   error
}

// NewDataset creates a handle for path on fs. mgr may be nil to skip the snapshot cache.
func NewDataset(fs afero.Fs, path string, mgr contract.CacheManager) *Dataset {
	return &Dataset{fs: fs, path: path, mgr: mgr}
}

// Path returns the dataset file path.
func (d *Dataset) Path() string {
	return d.path
}

// Table returns the loaded table. A cancelled context is reported without
// consuming the one load attempt.
func (d *Dataset) Table(ctx context.Context) (*schema.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.once.Do(func() {
		d.table, d.err = cachedLoadTable(d.fs, d.path, d.mgr)
	})
	return d.table, d.err
}
