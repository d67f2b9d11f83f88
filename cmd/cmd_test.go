package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"rank", "states", "metrics", "serve", "mcp", "version", "cache", "history"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}

	for _, path := range [][]string{
		{"cache", "status"}, {"cache", "clear"},
		{"history", "status"}, {"history", "export"}, {"history", "clear"}, {"history", "migrate"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[1], c.Name())
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"data", "metric", "state", "limit", "output", "output-file", "precision", "cache-backend", "history-backend", "config"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "m", flags.Lookup("metric").Shorthand)
	assert.Equal(t, "stringSlice", flags.Lookup("state").Value.Type())
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
	assert.NotNil(t, historyMigrateCmd.Flags().Lookup("target-version"))
}

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.db", sqlitePath("/tmp/custom.db", "/home/x/.divrank_cache.db"))
	assert.Equal(t, "/home/x/.divrank_cache.db", sqlitePath("", "/home/x/.divrank_cache.db"))
}
