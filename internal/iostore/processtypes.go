package iostore

import (
	"context"

	"github.com/gnames/valemdb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessTypeStore implements registry.ProcessTypes.
type ProcessTypeStore struct {
	s *Store
}

func (ps *ProcessTypeStore) Create(
	ctx context.Context,
	pt *schema.ProcessType,
) error {
	err := ps.s.db.WithContext(ctx).Create(pt).Error
	if isUniqueViolation(err) {
		return ConflictError("process type", pt.Abbreviation, err)
	}
	if err != nil {
		return CreateError("process type", pt.Abbreviation, err)
	}
	return nil
}

func (ps *ProcessTypeStore) Get(
	ctx context.Context,
	abbreviation string,
) (*schema.ProcessType, error) {
	var res schema.ProcessType
	err := ps.s.db.WithContext(ctx).
		Where("abbreviation = ?", abbreviation).
		First(&res).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("process type", abbreviation)
	}
	if err != nil {
		return nil, QueryError("process types", err)
	}
	return &res, nil
}

// All returns process types ordered by abbreviation.
func (ps *ProcessTypeStore) All(ctx context.Context) ([]schema.ProcessType, error) {
	var res []schema.ProcessType
	err := ps.s.db.WithContext(ctx).Order("abbreviation").Find(&res).Error
	if err != nil {
		return nil, QueryError("process types", err)
	}
	return res, nil
}

// Seed inserts process types and updates the description and example of
// those that exist.
func (ps *ProcessTypeStore) Seed(
	ctx context.Context,
	pts []schema.ProcessType,
) error {
	if len(pts) == 0 {
		return nil
	}
	rows := make([]schema.ProcessType, len(pts))
	for i, v := range pts {
		rows[i] = schema.ProcessType{
			Abbreviation: v.Abbreviation,
			Description:  v.Description,
			ExampleHTML:  v.ExampleHTML,
		}
	}
	err := ps.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "abbreviation"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"description", "example_html"},
			),
		}).Create(&rows).Error
	})
	if err != nil {
		return SeedError(err)
	}
	return nil
}

// findProcessTypes loads process types for a set of abbreviations.
// Repeated abbreviations count once. The result is ordered by
// abbreviation.
func findProcessTypes(
	tx *gorm.DB,
	abbrs []string,
) ([]schema.ProcessType, error) {
	set := abbrSet(abbrs)
	if len(set) == 0 {
		return nil, nil
	}
	var res []schema.ProcessType
	err := tx.Where("abbreviation IN ?", set).
		Order("abbreviation").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("process types", err)
	}
	if len(res) == len(set) {
		return res, nil
	}
	found := make(map[string]struct{}, len(res))
	for _, v := range res {
		found[v.Abbreviation] = struct{}{}
	}
	for _, v := range set {
		if _, ok := found[v]; !ok {
			return nil, ProcessTypeNotFoundError(v)
		}
	}
	return res, nil
}
