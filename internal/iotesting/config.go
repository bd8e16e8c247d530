// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"testing"

	"github.com/gnames/valemdb/internal/iodb"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/gnames/valemdb/pkg/schema"
	"gorm.io/gorm"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests. Tests never run against other databases.
	TestDatabaseName = "valem_test"
)

// Config returns a configuration with an in-memory SQLite database and
// a temporary home directory.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return config.New(
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(":memory:"),
		config.OptImportWithProgress(false),
	)
}

// PostgresConfig returns a configuration for PostgreSQL integration
// tests. Credentials come from VALEMDB_DATABASE_USER,
// VALEMDB_DATABASE_PASSWORD and VALEMDB_DATABASE_HOST when set.
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if v := os.Getenv("VALEMDB_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("VALEMDB_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	if v := os.Getenv("VALEMDB_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	return config.New(opts...)
}

// Operator returns a connected in-memory SQLite operator that is closed
// when the test ends.
func Operator(t *testing.T) db.Operator {
	t.Helper()
	op, err := iodb.Connect(context.Background(), Config(t))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}

// DB returns a migrated in-memory SQLite database.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := Operator(t).DB()
	if err := schema.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

// SeedProcessTypes inserts process types used across tests.
func SeedProcessTypes(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	pts := []schema.ProcessType{
		{Abbreviation: "EEX", Description: "Electron excitation"},
		{Abbreviation: "EXV", Description: "Vibrational excitation"},
		{Abbreviation: "HDS", Description: "Dissociation"},
		{Abbreviation: "___", Description: "Other"},
	}
	if err := gdb.Create(&pts).Error; err != nil {
		t.Fatalf("Failed to seed process types: %v", err)
	}
}
