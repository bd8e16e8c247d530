package db

import (
	"context"

	"github.com/gnames/valemdb/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a *gorm.DB for
// the schema manager and the registries.
type Operator interface {
	// Connect opens the database selected by cfg.Database.Driver.
	Connect(context.Context, *config.Config) error

	// Close closes the database connections.
	Close() error

	// DB returns the GORM handle, nil before Connect.
	DB() *gorm.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
