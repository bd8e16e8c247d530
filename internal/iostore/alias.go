package iostore

import (
	"context"
	"strconv"

	"github.com/gnames/valemdb/pkg/schema"
	"gorm.io/gorm"
)

// AliasStore implements registry.AliasIndex.
type AliasStore struct {
	s *Store
}

// Resolve returns the species that owns the alias. The lookup is exact.
func (as *AliasStore) Resolve(
	ctx context.Context,
	alias string,
) (*schema.Species, error) {
	return resolveAlias(as.s.db.WithContext(ctx), alias)
}

// AddAlias attaches an alias to an existing species.
func (as *AliasStore) AddAlias(
	ctx context.Context,
	speciesID int,
	alias string,
) (*schema.SpeciesAlias, error) {
	var res *schema.SpeciesAlias
	err := as.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp schema.Species
		err := tx.First(&sp, speciesID).Error
		if isRecordNotFound(err) {
			return NotFoundError("species", strconv.Itoa(speciesID))
		}
		if err != nil {
			return QueryError("species", err)
		}

		res = &schema.SpeciesAlias{SpeciesID: sp.ID, Text: alias}
		err = tx.Omit("Species").Create(res).Error
		if isUniqueViolation(err) {
			return AliasConflictError(alias, err)
		}
		if err != nil {
			return CreateError("alias", alias, err)
		}
		res.Species = sp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Aliases lists aliases of a species.
func (as *AliasStore) Aliases(
	ctx context.Context,
	speciesID int,
) ([]schema.SpeciesAlias, error) {
	var res []schema.SpeciesAlias
	err := as.s.db.WithContext(ctx).
		Where("species_id = ?", speciesID).
		Order("id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("aliases", err)
	}
	return res, nil
}

func resolveAlias(tx *gorm.DB, alias string) (*schema.Species, error) {
	var res schema.SpeciesAlias
	err := tx.Preload("Species").
		Where("text = ?", alias).
		First(&res).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("alias", alias)
	}
	if err != nil {
		return nil, QueryError("aliases", err)
	}
	return &res.Species, nil
}
