package iodb

import (
	"context"
	"fmt"

	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
	gdb  *gorm.DB
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL and opens
// GORM on top of it.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	dc := cfg.Database
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dc.User,
		dc.Password,
		dc.Host,
		dc.Port,
		dc.Database,
		dc.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(dc.Host, dc.Port, dc.Database, dc.User, err)
	}

	poolConfig.MaxConns = int32(max(cfg.JobsNumber, 4))
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(dc.Host, dc.Port, dc.Database, dc.User, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(dc.Host, dc.Port, dc.Database, dc.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		},
	)
	if err != nil {
		pool.Close()
		return GORMOpenError(err)
	}

	p.pool = pool
	p.gdb = gdb
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.gdb != nil {
		if sqlDB, err := p.gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if p.pool != nil {
		p.pool.Close()
	}
	p.gdb, p.pool = nil, nil
	return nil
}

func (p *pgxOperator) DB() *gorm.DB {
	return p.gdb
}

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(err)
	}
	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(ctx context.Context) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}
	return hasTables, nil
}

// DropAllTables drops all tables in the public schema.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return QueryTablesError(err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return QueryTablesError(err)
	}

	for _, table := range tables {
		dropSQL := "DROP TABLE IF EXISTS " + quoteIdent(table) + " CASCADE"
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}
