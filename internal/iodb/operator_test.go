package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/valemdb/internal/iodb"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests need network access and are skipped in short mode.

func memConfig() *config.Config {
	return config.New(
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(":memory:"),
	)
}

func TestNewOperator(t *testing.T) {
	assert := assert.New(t)
	op, err := iodb.NewOperator("sqlite")
	assert.Nil(err)
	assert.NotNil(op)

	op, err = iodb.NewOperator("postgres")
	assert.Nil(err)
	assert.NotNil(op)

	_, err = iodb.NewOperator("mysql")
	assert.NotNil(err)
}

func TestSQLiteOperator(t *testing.T) {
	ctx := context.Background()
	op, err := iodb.Connect(ctx, memConfig())
	require.NoError(t, err)
	defer op.Close()

	require.NotNil(t, op.DB())

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "fresh database is empty")

	err = op.DB().Exec("CREATE TABLE things (id INTEGER PRIMARY KEY)").Error
	require.NoError(t, err)
	err = op.DB().Exec(`CREATE TABLE parts (
		id INTEGER PRIMARY KEY,
		thing_id INTEGER REFERENCES things(id))`).Error
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "things")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, op.DropAllTables(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSQLiteOperator_NotConnected(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()

	_, err := op.TableExists(ctx, "species")
	assert.Error(t, err)
	_, err = op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
	assert.NoError(t, op.Close())
}

func TestSQLiteOperator_ForeignKeys(t *testing.T) {
	ctx := context.Background()
	op, err := iodb.Connect(ctx, memConfig())
	require.NoError(t, err)
	defer op.Close()

	var fk int
	err = op.DB().Raw("PRAGMA foreign_keys").Scan(&fk).Error
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := config.New(
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseHost("invalid-host-that-does-not-exist"),
	)
	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}
