// Package config provides configuration management for valemdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Log: level, format, destination
//   - General: jobs_number, parse_cache_ttl
//
// Runtime-only fields (CLI flags only):
//   - Import.Kind, Import.WithProgress, Import.NonStrict (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use VALEMDB_ prefix with underscores for nesting:
//
//	VALEMDB_DATABASE_DRIVER=sqlite
//	VALEMDB_DATABASE_PATH=/var/lib/valemdb/valem.db
//	VALEMDB_LOG_LEVEL=info
//	VALEMDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete valemdb configuration.
type Config struct {
	// Database contains connection settings for PostgreSQL or SQLite.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// ParseCacheTTL is the lifetime, in minutes, of memoized parser results.
	ParseCacheTTL int `mapstructure:"parse_cache_ttl" yaml:"parse_cache_ttl"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver selects the backend. Valid values: "postgres", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. ":memory:" keeps the database in
	// memory. Relative paths are resolved against the cache directory.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize defines the number of join rows inserted per statement
	// and the size of import batches reported in the logs.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// Kind of records in the import file.
	// Valid values: "reactions", "rps", "species".
	Kind string `mapstructure:"kind" yaml:"kind"`

	// WithProgress shows a progress bar during import.
	WithProgress bool `mapstructure:"with_progress" yaml:"with_progress"`

	// NonStrict imports reactions that do not conserve charge or atoms.
	NonStrict bool `mapstructure:"non_strict" yaml:"non_strict"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden by options given to New or later
// via Update().
func New(opts ...Option) *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "valem",
			SSLMode:   "disable",
			Path:      "valem.db",
			BatchSize: 1_000,
		},
		Import: ImportConfig{
			Kind:         "reactions",
			WithProgress: true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber:    runtime.NumCPU(),
		ParseCacheTTL: 30,
	}

	res.Update(opts)
	return res
}
