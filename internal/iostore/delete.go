package iostore

import (
	"context"
	"strconv"

	"github.com/gnames/valemdb/pkg/schema"
	"gorm.io/gorm"
)

// DeleteSpecies removes a species with its aliases and RPs.
func (s *Store) DeleteSpecies(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &schema.Species{}, "species", id); err != nil {
			return err
		}
		var rpIDs []int
		err := tx.Model(&schema.RP{}).
			Where("species_id = ?", id).
			Pluck("id", &rpIDs).Error
		if err != nil {
			return DeleteError("species", id, err)
		}
		if err = deleteRPs(tx, rpIDs); err != nil {
			return DeleteError("species", id, err)
		}
		err = tx.Where("species_id = ?", id).
			Delete(&schema.SpeciesAlias{}).Error
		if err != nil {
			return DeleteError("species", id, err)
		}
		if err = tx.Delete(&schema.Species{}, id).Error; err != nil {
			return DeleteError("species", id, err)
		}
		return nil
	})
}

// DeleteRP removes an RP with its states and reaction links. Reactions
// themselves stay.
func (s *Store) DeleteRP(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &schema.RP{}, "rp", id); err != nil {
			return err
		}
		if err := deleteRPs(tx, []int{id}); err != nil {
			return DeleteError("rp", id, err)
		}
		return nil
	})
}

// DeleteState removes one state. The RP keeps its Text, HTML and UUID,
// so its content key still names the original set of states and a later
// get-or-create of that text returns the RP with fewer states. Delete the
// RP instead to drop the whole stateful species.
func (s *Store) DeleteState(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&schema.State{}, id)
	if res.Error != nil {
		return DeleteError("state", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundError("state", strconv.Itoa(id))
	}
	return nil
}

// DeleteReaction removes a reaction with its RP links, process type
// links and datasets. RPs stay.
func (s *Store) DeleteReaction(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &schema.Reaction{}, "reaction", id); err != nil {
			return err
		}
		var dsIDs []int
		err := tx.Model(&schema.ReactionDataSet{}).
			Where("reaction_id = ?", id).
			Pluck("id", &dsIDs).Error
		if err != nil {
			return DeleteError("reaction", id, err)
		}
		if len(dsIDs) > 0 {
			err = tx.Exec(
				"DELETE FROM reaction_dataset_refs WHERE data_set_id IN ?",
				dsIDs,
			).Error
			if err != nil {
				return DeleteError("reaction", id, err)
			}
			err = tx.Delete(&schema.ReactionDataSet{}, dsIDs).Error
			if err != nil {
				return DeleteError("reaction", id, err)
			}
		}

		err = tx.Model(&schema.Reaction{ID: id}).
			Association("ProcessTypes").
			Clear()
		if err != nil {
			return DeleteError("reaction", id, err)
		}
		for _, v := range []any{&schema.ReactantList{}, &schema.ProductList{}} {
			err = tx.Where("reaction_id = ?", id).Delete(v).Error
			if err != nil {
				return DeleteError("reaction", id, err)
			}
		}
		if err = tx.Delete(&schema.Reaction{}, id).Error; err != nil {
			return DeleteError("reaction", id, err)
		}
		return nil
	})
}

func deleteRPs(tx *gorm.DB, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	models := []any{
		&schema.State{},
		&schema.ReactantList{},
		&schema.ProductList{},
	}
	for _, v := range models {
		if err := tx.Where("rp_id IN ?", ids).Delete(v).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&schema.RP{}, ids).Error
}

func mustExist(tx *gorm.DB, model any, entity string, id int) error {
	var count int64
	err := tx.Model(model).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return QueryError(entity, err)
	}
	if count == 0 {
		return NotFoundError(entity, strconv.Itoa(id))
	}
	return nil
}
