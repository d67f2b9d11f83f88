package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to mutate.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Data:         "data.csv",
		Output:       "text",
		Precision:    DefaultPrecision,
		Color:        "yes",
		CacheBackend: string(schema.NoneBackend),
		Metric:       string(schema.DescriptiveGender),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "metric by label", mutate: func(in *ConfigRawInput) { in.Metric = "Blau Index (Race)" }},
		{name: "empty metric uses default", mutate: func(in *ConfigRawInput) { in.Metric = "" }},
		{name: "invalid metric", mutate: func(in *ConfigRawInput) { in.Metric = "bogus" }, expectError: "invalid metric"},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "--output-file is required"},
		{name: "precision too low", mutate: func(in *ConfigRawInput) { in.Precision = 0 }, expectError: "precision must be between"},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 9 }, expectError: "precision must be between"},
		{name: "negative limit", mutate: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: "limit must be between"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color value"},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "invalid backend"},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "mysql" }, expectError: "connection string is required"},
		{name: "bad shutdown timeout", mutate: func(in *ConfigRawInput) { in.ShutdownTimeout = "soon" }, expectError: "invalid shutdown timeout"},
		{name: "non-positive shutdown timeout", mutate: func(in *ConfigRawInput) { in.ShutdownTimeout = "0s" }, expectError: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateValues(t *testing.T) {
	input := validInput()
	input.Data = "  "
	input.Metric = "Compensatory (Race)"
	input.State = []string{"NY,CA", "CA"}
	input.Limit = 5
	input.Output = "JSON"
	input.Color = "no"
	input.ShutdownTimeout = "3s"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, DefaultDataPath, cfg.DataPath)
	assert.Equal(t, schema.CompensatoryRace, cfg.Metric)
	assert.Equal(t, []string{"CA", "NY"}, cfg.States)
	assert.Equal(t, 5, cfg.ResultLimit)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, schema.NoneBackend, cfg.CacheBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
}

func TestValidateBackendConfigs_SQLiteCollision(t *testing.T) {
	shared := filepath.Join(t.TempDir(), "shared.db")

	input := validInput()
	input.CacheBackend = "sqlite"
	input.CacheDBConnect = shared
	input.HistoryBackend = "sqlite"
	input.HistoryDBConnect = shared

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must use different SQLite database files")

	input.HistoryDBConnect = filepath.Join(t.TempDir(), "history.db")
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/divrank", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/divrank", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=divrank", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Metric: schema.BlausGender, States: []string{"CA"}}
	clone := cfg.Clone()
	clone.States[0] = "NY"
	clone.Metric = schema.BlausRace

	assert.Equal(t, []string{"CA"}, cfg.States)
	assert.Equal(t, schema.BlausGender, cfg.Metric)
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{DataPath: "d.csv", Metric: schema.DescriptiveRace, States: []string{"CA", "NY"}, Output: schema.CSVOut}
	params := cfg.ConfigParams()
	assert.Equal(t, "descriptive_race", params["metric"])
	assert.Equal(t, "CA,NY", params["states"])
	assert.Equal(t, "csv", params["output"])
}
