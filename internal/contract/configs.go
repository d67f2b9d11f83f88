package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/divrank/schema"
)

// Default values for configuration.
const (
	DefaultDataPath        = "institutional_diversity_metric.csv"
	DefaultMetric          = schema.DescriptiveGender
	DefaultResultLimit     = 0 // 0 = every ranked row
	MaxResultLimit         = 100000
	DefaultPrecision       = 2
	MaxPrecision           = 4
	DefaultAddr            = ":8501"
	DefaultShutdownTimeout = 10 * time.Second
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	DataPath    string
	Metric      schema.MetricKey
	States      []string // empty = all states
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Addr            string
	ShutdownTimeout time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored ranks in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Data             string `mapstructure:"data"`
	OutputFile       string `mapstructure:"output-file"`
	Output           string `mapstructure:"output"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Color            string `mapstructure:"color"`

	// --- Fields from rankCmd.Flags() ---
	Metric string   `mapstructure:"metric"`
	State  []string `mapstructure:"state"`
	Limit  int      `mapstructure:"limit"`

	// --- Fields from serveCmd.Flags() ---
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown-timeout"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.States != nil {
		clone.States = slices.Clone(c.States)
	}
	return &clone
}

// ConfigParams returns the subset of the config recorded with each ranking run.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"data_path":    c.DataPath,
		"metric":       string(c.Metric),
		"states":       schema.FormatStates(c.States),
		"result_limit": c.ResultLimit,
		"output":       string(c.Output),
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRankSelection(cfg, input); err != nil {
		return err
	}
	if err := processServeOptions(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend maps a raw backend string to a DatabaseBackend. An empty
// value resolves to NoneBackend.
func ParseBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	backend, err := ParseBackend(input.CacheBackend)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	backend, err = ParseBackend(input.HistoryBackend)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Both stores share the sqlite file layout, so they must not collide.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if filepath.Clean(cacheDBPath) == filepath.Clean(historyDBPath) && cacheDBPath != ":memory:" {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataPath = strings.TrimSpace(input.Data)
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	return nil
}

// processRankSelection handles metric, state and limit selection.
func processRankSelection(cfg *Config, input *ConfigRawInput) error {
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	raw := input.Metric
	if strings.TrimSpace(raw) == "" {
		raw = string(DefaultMetric)
	}
	metric, ok := schema.LookupMetric(raw)
	if !ok {
		return fmt.Errorf("invalid metric '%s'. run 'divrank metrics' for the list of keys", input.Metric)
	}
	cfg.Metric = metric
	cfg.States = schema.NormalizeStates(input.State)
	return nil
}

// processServeOptions handles the HTTP dashboard settings.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	cfg.ShutdownTimeout = DefaultShutdownTimeout
	if input.ShutdownTimeout != "" {
		d, err := time.ParseDuration(input.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout '%s': %w", input.ShutdownTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("shutdown timeout must be positive (received %s)", d)
		}
		cfg.ShutdownTimeout = d
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
