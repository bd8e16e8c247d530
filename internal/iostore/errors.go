package iostore

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/pkg/errcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// NotFoundError is returned when no row matches a lookup.
func NotFoundError(entity, key string) error {
	msg := "%s <em>%s</em> not found"

	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: []any{entity, key},
		Err:  fmt.Errorf("%s %q not found", entity, key),
	}
}

// QueryError wraps a failed database read.
func QueryError(entity string, err error) error {
	msg := "Cannot query %s"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{entity},
		Err:  fmt.Errorf("failed to query %s: %w", entity, err),
	}
}

// CreateError wraps a failed insert or update.
func CreateError(entity, key string, err error) error {
	msg := "Cannot save %s <em>%s</em>"

	return &gn.Error{
		Code: errcode.StoreCreateError,
		Msg:  msg,
		Vars: []any{entity, key},
		Err:  fmt.Errorf("failed to save %s %q: %w", entity, key, err),
	}
}

// AliasConflictError is returned when an alias text is already used.
func AliasConflictError(alias string, err error) error {
	msg := `Alias <em>%s</em> already exists

Aliases are unique across all species.`

	return &gn.Error{
		Code: errcode.StoreAliasConflictError,
		Msg:  msg,
		Vars: []any{alias},
		Err:  fmt.Errorf("alias %q already exists: %w", alias, err),
	}
}

// ConflictError is returned when a raw insert violates a unique key.
func ConflictError(entity, key string, err error) error {
	msg := "%s <em>%s</em> already exists"

	return &gn.Error{
		Code: errcode.StoreConflictError,
		Msg:  msg,
		Vars: []any{entity, key},
		Err:  fmt.Errorf("%s %q already exists: %w", entity, key, err),
	}
}

// ProcessTypeNotFoundError is returned for an unknown process type
// abbreviation.
func ProcessTypeNotFoundError(abbr string) error {
	msg := `Process type <em>%s</em> does not exist

<em>How to fix:</em>
  1. List known process types:
     <em>valemdb process-types</em>
  2. Seed the default table:
     <em>valemdb create</em>`

	return &gn.Error{
		Code: errcode.StoreProcessTypeNotFoundError,
		Msg:  msg,
		Vars: []any{abbr},
		Err:  fmt.Errorf("process type %q does not exist", abbr),
	}
}

// DuplicateReactionError is returned when an explicit creation finds an
// equivalent reaction.
func DuplicateReactionError(text string, id int) error {
	msg := `Reaction <em>%s</em> already exists as R%d

Allow duplicates to create it anyway.`

	return &gn.Error{
		Code: errcode.StoreDuplicateReactionError,
		Msg:  msg,
		Vars: []any{text, id},
		Err:  fmt.Errorf("reaction %q already exists as R%d", text, id),
	}
}

// DeleteError wraps a failed delete.
func DeleteError(entity string, id int, err error) error {
	msg := "Cannot delete %s <em>%d</em>"

	return &gn.Error{
		Code: errcode.StoreDeleteError,
		Msg:  msg,
		Vars: []any{entity, id},
		Err:  fmt.Errorf("failed to delete %s %d: %w", entity, id, err),
	}
}

// SeedError wraps a failed process type upsert.
func SeedError(err error) error {
	msg := "Cannot seed process types"

	return &gn.Error{
		Code: errcode.StoreSeedError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to seed process types: %w", err),
	}
}

// isUniqueViolation recognizes unique constraint errors of GORM,
// PostgreSQL and SQLite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
