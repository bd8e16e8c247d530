package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	ParseFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBQueryTablesError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Store errors
	StoreNotFoundError
	StoreQueryError
	StoreCreateError
	StoreAliasConflictError
	StoreConflictError
	StoreProcessTypeNotFoundError
	StoreDuplicateReactionError
	StoreDeleteError
	StoreSeedError

	// Import errors
	ImportReadError
	ImportKindError

	// Optimizer errors
	OptimizerRenderError
	OptimizerOrphanRemovalError
	OptimizerVacuumError
)
