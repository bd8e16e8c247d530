package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/valemdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "valemdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "valemdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "valemdb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "valemdb", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "valem", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "valem.db", cfg.Database.Path)
		assert.Equal(t, 1_000, cfg.Database.BatchSize)

		assert.Equal(t, "reactions", cfg.Import.Kind)
		assert.True(t, cfg.Import.WithProgress)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
		assert.Equal(t, 30, cfg.ParseCacheTTL)
	})

	t.Run("applies options", func(t *testing.T) {
		cfg := config.New(
			config.OptDatabaseDriver("postgres"),
			config.OptDatabaseBatchSize(50),
			config.OptJobsNumber(3),
		)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 50, cfg.Database.BatchSize)
		assert.Equal(t, 3, cfg.JobsNumber)
		assert.Equal(t, "valem", cfg.Database.Database)
	})
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"normalizes case", " SQLite ", "sqlite"},
		{"ignores unknown driver", "mysql", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid port", 6432, 6432},
		{"ignores zero", 0, 5432},
		{"ignores negative", -100, 5432},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabasePort(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets disable", "disable", "disable"},
		{"sets require", "require", "require"},
		{"sets verify-ca", "verify-ca", "verify-ca"},
		{"sets verify-full", "verify-full", "verify-full"},
		{"normalizes to lowercase", "REQUIRE", "require"},
		{"ignores invalid value", "invalid", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLogSettings(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("trace"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionPositiveInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(int) config.Option
		get   func(*config.Config) int
		input int
		want  int
	}{
		{
			name:  "batch size",
			opt:   config.OptDatabaseBatchSize,
			get:   func(c *config.Config) int { return c.Database.BatchSize },
			input: 500,
			want:  500,
		},
		{
			name:  "batch size ignores zero",
			opt:   config.OptDatabaseBatchSize,
			get:   func(c *config.Config) int { return c.Database.BatchSize },
			input: 0,
			want:  1_000,
		},
		{
			name:  "jobs number",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: 3,
			want:  3,
		},
		{
			name:  "jobs number ignores negative",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: -5,
			want:  runtime.NumCPU(),
		},
		{
			name:  "parse cache ttl",
			opt:   config.OptParseCacheTTL,
			get:   func(c *config.Config) int { return c.ParseCacheTTL },
			input: 5,
			want:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestOptionImport(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptImportKind("RPS"),
		config.OptImportWithProgress(false),
	})
	assert.Equal(t, "rps", cfg.Import.Kind)
	assert.False(t, cfg.Import.WithProgress)

	cfg.Update([]config.Option{config.OptImportKind("molecules")})
	assert.Equal(t, "rps", cfg.Import.Kind)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseHost("db"),
		config.OptDatabasePath("/tmp/x.db"),
		config.OptLogLevel("warn"),
		config.OptJobsNumber(2),
		config.OptHomeDir("/home/user"),
		config.OptImportKind("species"),
	})

	cfg2 := config.New()
	cfg2.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database, cfg2.Database)
	assert.Equal(t, cfg.Log, cfg2.Log)
	assert.Equal(t, cfg.JobsNumber, cfg2.JobsNumber)
	assert.Empty(t, cfg2.HomeDir, "home dir is runtime-only")
	assert.Equal(t, "reactions", cfg2.Import.Kind, "import kind is runtime-only")
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		name string
		home string
		path string
		want string
	}{
		{"memory", "/home/u", ":memory:", ":memory:"},
		{"absolute", "/home/u", "/data/v.db", "/data/v.db"},
		{"relative", "/home/u", "v.db",
			filepath.Join("/home/u", ".cache", "valemdb", "v.db")},
		{"no home", "", "v.db", "v.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opts := []config.Option{config.OptDatabasePath(tt.path)}
			if tt.home != "" {
				opts = append(opts, config.OptHomeDir(tt.home))
			}
			cfg.Update(opts)
			assert.Equal(t, tt.want, cfg.SQLitePath())
		})
	}
}
