package iostore

import (
	"context"

	"github.com/gnames/valemdb/pkg/schema"
	"github.com/gnames/valemdb/pkg/valem"
	"gorm.io/gorm"
)

// SpeciesStore implements registry.SpeciesRegistry.
type SpeciesStore struct {
	s *Store
}

// Get finds a species by the canonical form of its formula.
func (ss *SpeciesStore) Get(
	ctx context.Context,
	text string,
) (*schema.Species, error) {
	f, err := ss.s.parser.Formula(text)
	if err != nil {
		return nil, err
	}
	return findSpecies(ss.s.db.WithContext(ctx), f.Text)
}

// GetOrCreate finds a species or creates it.
func (ss *SpeciesStore) GetOrCreate(
	ctx context.Context,
	text string,
) (*schema.Species, bool, error) {
	f, err := ss.s.parser.Formula(text)
	if err != nil {
		return nil, false, err
	}

	unlock := ss.s.locks.Lock("species:" + f.Text)
	defer unlock()

	var res *schema.Species
	var created bool
	err = ss.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, created, err = ss.s.getOrCreateSpecies(tx, f)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return res, created, nil
}

// Create inserts the species as given.
func (ss *SpeciesStore) Create(
	ctx context.Context,
	species *schema.Species,
) error {
	err := ss.s.db.WithContext(ctx).Create(species).Error
	if isUniqueViolation(err) {
		return ConflictError("species", species.Text, err)
	}
	if err != nil {
		return CreateError("species", species.Text, err)
	}
	return nil
}

func findSpecies(tx *gorm.DB, canonical string) (*schema.Species, error) {
	var res schema.Species
	err := tx.Where("uuid = ?", schema.ContentKey(canonical)).
		First(&res).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("species", canonical)
	}
	if err != nil {
		return nil, QueryError("species", err)
	}
	return &res, nil
}

// getOrCreateSpecies works inside the caller's transaction. The formula
// is parsed again from its canonical text, so HTML is rendered from the
// canonical form.
func (s *Store) getOrCreateSpecies(
	tx *gorm.DB,
	f *valem.Formula,
) (*schema.Species, bool, error) {
	res, err := findSpecies(tx, f.Text)
	if err == nil {
		return res, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	canon, err := s.parser.Formula(f.Text)
	if err != nil {
		return nil, false, err
	}
	res = &schema.Species{
		Text:   canon.Text,
		HTML:   canon.HTML,
		Charge: canon.Charge,
	}
	created, err := insert(tx,
		func(stx *gorm.DB) error { return stx.Create(res).Error },
		func(tx *gorm.DB) error {
			sp, err := findSpecies(tx, canon.Text)
			if err != nil {
				return err
			}
			res = sp
			return nil
		},
	)
	if err != nil {
		return nil, false, CreateError("species", canon.Text, err)
	}
	return res, created, nil
}
