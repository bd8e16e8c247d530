package iostore

import (
	"context"
	"slices"
	"strconv"

	"github.com/gnames/valemdb/pkg/schema"
	"gorm.io/gorm"
)

// DataSetStore implements registry.DataSets.
type DataSetStore struct {
	s *Store
}

// Create saves a dataset of an existing reaction. Refs with a known DOI
// are reused, the rest are created.
func (ds *DataSetStore) Create(
	ctx context.Context,
	dataSet *schema.ReactionDataSet,
	refs ...schema.Ref,
) error {
	return ds.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Reaction{}, "reaction", dataSet.ReactionID)
		if err != nil {
			return err
		}
		resolved := make([]schema.Ref, 0, len(dataSet.Refs)+len(refs))
		for _, v := range slices.Concat(dataSet.Refs, refs) {
			ref, err := getOrCreateRef(tx, v)
			if err != nil {
				return err
			}
			resolved = append(resolved, *ref)
		}
		dataSet.Refs = resolved

		err = tx.Omit("Reaction", "Refs.*").Create(dataSet).Error
		if err != nil {
			return CreateError("dataset", dataSet.Comment, err)
		}
		return tx.Scopes(preloadDataSet).First(dataSet, dataSet.ID).Error
	})
}

// Get returns a dataset with its reaction and refs.
func (ds *DataSetStore) Get(
	ctx context.Context,
	id int,
) (*schema.ReactionDataSet, error) {
	var res schema.ReactionDataSet
	err := ds.s.db.WithContext(ctx).
		Scopes(preloadDataSet).
		First(&res, id).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("dataset", strconv.Itoa(id))
	}
	if err != nil {
		return nil, QueryError("datasets", err)
	}
	return &res, nil
}

// AddRef links a ref to a dataset. Adding the same ref twice keeps one
// link.
func (ds *DataSetStore) AddRef(
	ctx context.Context,
	dataSetID int,
	ref schema.Ref,
) error {
	return ds.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dataSet schema.ReactionDataSet
		err := tx.First(&dataSet, dataSetID).Error
		if isRecordNotFound(err) {
			return NotFoundError("dataset", strconv.Itoa(dataSetID))
		}
		if err != nil {
			return QueryError("datasets", err)
		}
		r, err := getOrCreateRef(tx, ref)
		if err != nil {
			return err
		}
		err = tx.Model(&dataSet).
			Omit("Refs.*").
			Association("Refs").
			Append(r)
		if err != nil {
			return CreateError("ref", r.Title, err)
		}
		return nil
	})
}

// ForReaction lists datasets of a reaction.
func (ds *DataSetStore) ForReaction(
	ctx context.Context,
	reactionID int,
) ([]schema.ReactionDataSet, error) {
	var res []schema.ReactionDataSet
	err := ds.s.db.WithContext(ctx).
		Preload("Refs", orderByID).
		Where("reaction_id = ?", reactionID).
		Order("id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("datasets", err)
	}
	return res, nil
}

func getOrCreateRef(tx *gorm.DB, ref schema.Ref) (*schema.Ref, error) {
	if ref.ID != 0 {
		var res schema.Ref
		err := tx.First(&res, ref.ID).Error
		if isRecordNotFound(err) {
			return nil, NotFoundError("ref", strconv.Itoa(ref.ID))
		}
		if err != nil {
			return nil, QueryError("refs", err)
		}
		return &res, nil
	}

	res := ref
	if ref.DOI == nil {
		if err := tx.Create(&res).Error; err != nil {
			return nil, CreateError("ref", ref.Title, err)
		}
		return &res, nil
	}

	findByDOI := func(tx *gorm.DB) error {
		return tx.Where("doi = ?", *ref.DOI).First(&res).Error
	}
	err := findByDOI(tx)
	if err == nil {
		return &res, nil
	}
	if !isRecordNotFound(err) {
		return nil, QueryError("refs", err)
	}
	_, err = insert(tx,
		func(stx *gorm.DB) error { return stx.Create(&res).Error },
		findByDOI,
	)
	if err != nil {
		return nil, CreateError("ref", *ref.DOI, err)
	}
	return &res, nil
}

func preloadDataSet(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Reaction").
		Preload("Refs", orderByID)
}
