// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/gnames/valemdb/pkg/db"
	"github.com/gnames/valemdb/pkg/lifecycle"
	"github.com/gnames/valemdb/pkg/schema"
)

// SchemaVersion changes whenever models change in a way that needs
// a migration.
const SchemaVersion = "v1.0.0"

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema and records its version.
func (m *manager) Create(ctx context.Context) error {
	return m.migrate(ctx, CreateSchemaError)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	return m.migrate(ctx, MigrateSchemaError)
}

func (m *manager) migrate(ctx context.Context, wrap func(error) error) error {
	gdb := m.operator.DB()
	if gdb == nil {
		return NotConnectedError()
	}
	gdb = gdb.WithContext(ctx)

	if err := schema.Migrate(gdb); err != nil {
		return wrap(err)
	}
	if err := gdb.AutoMigrate(&schemaVersion{}); err != nil {
		return wrap(err)
	}
	err := gdb.Where("1 = 1").Delete(&schemaVersion{}).Error
	if err != nil {
		return wrap(err)
	}
	err = gdb.Create(&schemaVersion{Version: SchemaVersion}).Error
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (m *manager) Version() string {
	return SchemaVersion
}

// schemaVersion keeps the version of the schema a database was created
// or migrated with.
type schemaVersion struct {
	Version string `gorm:"type:varchar(50);primaryKey"`
}

func (schemaVersion) TableName() string { return "schema_version" }
