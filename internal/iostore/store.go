// Package iostore implements the registries of pkg/registry on top of
// GORM. It works with PostgreSQL and SQLite.
//
// Every get-or-create runs in one transaction. Inserts of Species and RP
// rows happen inside a savepoint, and a unique violation on the content
// key means a concurrent writer created the row first, so the row is read
// back instead. Within one process an additional keyed mutex serializes
// get-or-create calls for the same canonical text.
package iostore

import (
	"errors"

	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/valem"
	"gorm.io/gorm"
)

// Store gives access to all registries that share one database handle,
// one parser and one lock table.
type Store struct {
	db     *gorm.DB
	parser valem.Parser
	locks  *keyedMutex
}

// New creates a Store. If p is nil the default valem parser is used.
func New(db *gorm.DB, p valem.Parser) *Store {
	if p == nil {
		p = valem.New()
	}
	return &Store{
		db:     db,
		parser: p,
		locks:  newKeyedMutex(),
	}
}

// Parser returns the parser used to canonicalize texts.
func (s *Store) Parser() valem.Parser {
	return s.parser
}

// Species returns the species registry.
func (s *Store) Species() *SpeciesStore {
	return &SpeciesStore{s: s}
}

// Aliases returns the alias index.
func (s *Store) Aliases() *AliasStore {
	return &AliasStore{s: s}
}

// RPs returns the stateful species registry.
func (s *Store) RPs() *RPStore {
	return &RPStore{s: s}
}

// Reactions returns the reaction registry.
func (s *Store) Reactions() *ReactionStore {
	return &ReactionStore{s: s}
}

// ProcessTypes returns the process type table.
func (s *Store) ProcessTypes() *ProcessTypeStore {
	return &ProcessTypeStore{s: s}
}

// DataSets returns the dataset store.
func (s *Store) DataSets() *DataSetStore {
	return &DataSetStore{s: s}
}

var (
	_ registry.SpeciesRegistry  = (*SpeciesStore)(nil)
	_ registry.AliasIndex       = (*AliasStore)(nil)
	_ registry.RPRegistry       = (*RPStore)(nil)
	_ registry.ReactionRegistry = (*ReactionStore)(nil)
	_ registry.ProcessTypes     = (*ProcessTypeStore)(nil)
	_ registry.DataSets         = (*DataSetStore)(nil)
	_ registry.Deleter          = (*Store)(nil)
)

// insert creates a row inside a savepoint. When the insert hits a unique
// constraint the savepoint is rolled back and reread loads the existing
// row. The bool tells whether the row was created.
func insert(
	tx *gorm.DB,
	create func(*gorm.DB) error,
	reread func(*gorm.DB) error,
) (bool, error) {
	err := tx.Transaction(create)
	if err == nil {
		return true, nil
	}
	if !isUniqueViolation(err) {
		return false, err
	}
	if err = reread(tx); err != nil {
		return false, err
	}
	return false, nil
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isNotFound(err error) bool {
	return registry.IsNotFound(err)
}
