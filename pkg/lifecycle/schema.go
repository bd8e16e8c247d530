// Package lifecycle defines contracts for the database lifecycle phases.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent, safe to run multiple times.
type SchemaManager interface {
	// Create creates the schema on an empty database.
	// Existing tables must be dropped by the caller beforehand.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version using
	// GORM AutoMigrate.
	Migrate(ctx context.Context) error

	// Version is the schema version string recorded in the database.
	Version() string
}
