package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "valemdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/valemdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/valemdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/valemdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/valemdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath resolves the SQLite database location. Absolute paths and
// ":memory:" are returned unchanged, relative paths live in the cache
// directory.
func (c *Config) SQLitePath() string {
	p := c.Database.Path
	if p == ":memory:" || filepath.IsAbs(p) || c.HomeDir == "" {
		return p
	}
	return filepath.Join(CacheDir(c.HomeDir), p)
}
