package db_test

import (
	"testing"

	"github.com/gnames/valemdb/internal/iodb"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/stretchr/testify/assert"
)

// TestOperatorsImplementInterface verifies that both backends
// implement the db.Operator interface.
func TestOperatorsImplementInterface(t *testing.T) {
	ops := []db.Operator{
		iodb.NewPgxOperator(),
		iodb.NewSQLiteOperator(),
	}
	for _, op := range ops {
		assert.Nil(t, op.DB(), "not connected yet")
	}
}
