// Package schema provides database models for valemdb.
// Models are GORM structs; tables are created with AutoMigrate.
package schema

import (
	"gorm.io/gorm"
)

// Species is a chemical species identified by its canonical formula.
type Species struct {
	ID int `gorm:"primaryKey" json:"id"`

	// UUID is a UUID v5 content key derived from Text.
	UUID string `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`

	// Text is the canonical formula, e.g. "C3H8+2".
	Text string `gorm:"type:varchar(80);not null;index" json:"text"`

	HTML string `gorm:"column:html;type:varchar(200);not null" json:"html"`

	// Charge is the net charge of the species.
	Charge int `gorm:"not null" json:"charge"`
}

func (Species) TableName() string { return "species" }

// BeforeCreate fills the content key when the caller did not set it.
func (s *Species) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = ContentKey(s.Text)
	}
	return nil
}

// SpeciesAlias is an alternative name of a species: a trivial name,
// an InChI, an InChIKey or a different formula.
type SpeciesAlias struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	SpeciesID int     `gorm:"not null;index" json:"species_id"`
	Species   Species `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Text of the alias, unique across all species.
	Text string `gorm:"type:varchar(255);uniqueIndex;not null" json:"text"`
}

func (SpeciesAlias) TableName() string { return "species_aliases" }

// RP (Reactant/Product) is a species in a particular set of states.
type RP struct {
	ID int `gorm:"primaryKey" json:"id"`

	// UUID is a UUID v5 content key derived from Text.
	UUID string `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`

	SpeciesID int     `gorm:"not null;index" json:"species_id"`
	Species   Species `gorm:"constraint:OnDelete:CASCADE" json:"species"`

	// Text is the canonical stateful species, e.g. "H2 v=0;J=2".
	Text string `gorm:"type:varchar(200);not null;index" json:"text"`

	HTML string `gorm:"column:html;type:varchar(600);not null" json:"html"`

	States []State `gorm:"foreignKey:RPID;constraint:OnDelete:CASCADE" json:"states,omitempty"`
}

func (RP) TableName() string { return "rps" }

// BeforeCreate fills the content key when the caller did not set it.
func (rp *RP) BeforeCreate(tx *gorm.DB) error {
	if rp.UUID == "" {
		rp.UUID = ContentKey(rp.Text)
	}
	return nil
}

// Charge is the charge of the owning species. Species must be loaded.
func (rp RP) Charge() int {
	return rp.Species.Charge
}

// State is one state of an RP.
type State struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	RPID      int       `gorm:"column:rp_id;not null;index" json:"rp_id"`
	StateType StateType `gorm:"not null" json:"state_type"`
	Text      string    `gorm:"type:varchar(64);not null" json:"text"`
	HTML      string    `gorm:"column:html;type:varchar(100);not null" json:"html"`
}

func (State) TableName() string { return "states" }

// BeforeSave rejects state types outside of the StateType table.
func (s *State) BeforeSave(tx *gorm.DB) error {
	return s.StateType.Validate()
}

// ProcessType classifies reactions, e.g. "EEX" for electron excitation.
type ProcessType struct {
	ID           int     `gorm:"primaryKey" json:"id" yaml:"-"`
	Abbreviation string  `gorm:"type:varchar(3);uniqueIndex;not null" json:"abbreviation" yaml:"abbreviation"`
	Description  string  `gorm:"type:varchar(200);not null" json:"description" yaml:"description"`
	ExampleHTML  *string `gorm:"column:example_html;type:varchar(200)" json:"example_html,omitempty" yaml:"example_html"`
}

func (ProcessType) TableName() string { return "process_types" }

// Reaction is a canonical reaction between RPs.
type Reaction struct {
	ID int `gorm:"primaryKey" json:"id"`

	// Text is the canonical reaction, stoichiometry expanded.
	Text string `gorm:"type:varchar(256);not null;index" json:"text"`

	// OrderedText has the terms of each side sorted, it is shared by
	// reactions that differ only in the order of their terms.
	OrderedText string `gorm:"type:varchar(256);not null;index" json:"ordered_text"`

	HTML    string `gorm:"column:html;type:varchar(1024);not null" json:"html"`
	LaTeX   string `gorm:"column:latex;type:varchar(1024);not null" json:"latex"`
	Comment string `gorm:"type:varchar(1024);not null" json:"comment"`

	Reactants    []ReactantList `gorm:"constraint:OnDelete:CASCADE" json:"reactants,omitempty"`
	Products     []ProductList  `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`
	ProcessTypes []ProcessType  `gorm:"many2many:reaction_process_types;constraint:OnDelete:CASCADE" json:"process_types,omitempty"`
}

func (Reaction) TableName() string { return "reactions" }

// Molecularity is the number of reactant units. Reactants must be loaded.
func (r Reaction) Molecularity() int {
	return len(r.Reactants)
}

// ReactantList links a reaction to one reactant unit. A reactant with
// stoichiometric coefficient N has N rows.
type ReactantList struct {
	ID         int `gorm:"primaryKey" json:"-"`
	ReactionID int `gorm:"not null;index" json:"-"`
	RPID       int `gorm:"column:rp_id;not null;index" json:"rp_id"`
	RP         RP  `gorm:"foreignKey:RPID;constraint:OnDelete:CASCADE" json:"rp"`
}

func (ReactantList) TableName() string { return "reaction_reactants" }

// ProductList links a reaction to one product unit.
type ProductList struct {
	ID         int `gorm:"primaryKey" json:"-"`
	ReactionID int `gorm:"not null;index" json:"-"`
	RPID       int `gorm:"column:rp_id;not null;index" json:"rp_id"`
	RP         RP  `gorm:"foreignKey:RPID;constraint:OnDelete:CASCADE" json:"rp"`
}

func (ProductList) TableName() string { return "reaction_products" }
