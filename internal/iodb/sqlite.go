package iodb

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator on top of the pure Go
// SQLite driver.
type sqliteOperator struct {
	gdb *gorm.DB
}

// NewSQLiteOperator creates a new SQLite operator
// (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// sqliteDSN builds a DSN with foreign keys enabled. ":memory:" gives a
// private in-memory database.
func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return "file:" + filepath.ToSlash(path) + "?" + pragmas
}

// Connect opens the SQLite file given by cfg.SQLitePath().
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	path := cfg.SQLitePath()
	gdb, err := gorm.Open(
		sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(path),
		}),
		&gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		},
	)
	if err != nil {
		return SQLiteConnectionError(path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return SQLiteConnectionError(path, err)
	}
	// one writer at a time, and an in-memory database lives in a
	// single connection.
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return SQLiteConnectionError(path, err)
	}

	s.gdb = gdb
	return nil
}

// Close closes the database.
func (s *sqliteOperator) Close() error {
	if s.gdb == nil {
		return nil
	}
	sqlDB, err := s.gdb.DB()
	s.gdb = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *sqliteOperator) DB() *gorm.DB {
	return s.gdb
}

// TableExists checks if a table exists.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.gdb == nil {
		return false, NotConnectedError()
	}
	var count int64
	err := s.gdb.WithContext(ctx).
		Raw(`SELECT count(*) FROM sqlite_master
			WHERE type = 'table' AND name = ?`, tableName).
		Scan(&count).Error
	if err != nil {
		return false, TableCheckError(err)
	}
	return count > 0, nil
}

// HasTables checks if the database has any user tables.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := s.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all user tables. Foreign keys are switched off
// for the duration so tables can go in any order.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	tables, err := s.tables(ctx)
	if err != nil {
		return err
	}
	gdb := s.gdb.WithContext(ctx)
	if err = gdb.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return DropTableError("*", err)
	}
	defer gdb.Exec("PRAGMA foreign_keys = ON")

	for _, table := range tables {
		dropSQL := "DROP TABLE IF EXISTS " + quoteIdent(table)
		if err = gdb.Exec(dropSQL).Error; err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (s *sqliteOperator) tables(ctx context.Context) ([]string, error) {
	if s.gdb == nil {
		return nil, NotConnectedError()
	}
	var names []string
	err := s.gdb.WithContext(ctx).
		Raw(`SELECT name FROM sqlite_master WHERE type = 'table'`).
		Scan(&names).Error
	if err != nil {
		return nil, QueryTablesError(err)
	}
	res := names[:0]
	for _, v := range names {
		if strings.HasPrefix(v, "sqlite_") {
			continue
		}
		res = append(res, v)
	}
	return res, nil
}
