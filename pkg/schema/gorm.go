package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Species{},
		&SpeciesAlias{},
		&RP{},
		&State{},
		&ProcessType{},
		&Reaction{},
		&ReactantList{},
		&ProductList{},
		&Ref{},
		&ReactionDataSet{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
