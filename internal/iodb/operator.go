// Package iodb implements database operations for PostgreSQL and SQLite.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"

	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
)

// NewOperator returns an operator for the given driver name,
// "postgres" or "sqlite".
func NewOperator(driver string) (db.Operator, error) {
	switch driver {
	case "postgres":
		return NewPgxOperator(), nil
	case "sqlite":
		return NewSQLiteOperator(), nil
	default:
		return nil, UnknownDriverError(driver)
	}
}

// Connect creates an operator for cfg.Database.Driver and connects it.
func Connect(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	op, err := NewOperator(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return op, nil
}

func quoteIdent(name string) string {
	return fmt.Sprintf(`"%s"`, name)
}
