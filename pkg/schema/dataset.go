package schema

import (
	"time"
)

// Provenance records who added a row and when it changed. Embed it into
// models that need it.
type Provenance struct {
	AddedByUserID *int      `gorm:"column:added_by_user_id" json:"added_by_user_id,omitempty"`
	TimeAdded     time.Time `gorm:"autoCreateTime" json:"time_added"`
	TimeModified  time.Time `gorm:"autoUpdateTime" json:"time_modified"`
}

func (p Provenance) Created() time.Time  { return p.TimeAdded }
func (p Provenance) Modified() time.Time { return p.TimeModified }

// Ref is a bibliographic reference for data.
type Ref struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	Authors   string  `gorm:"type:text;not null" json:"authors"`
	Title     string  `gorm:"type:text;not null" json:"title"`
	Journal   string  `gorm:"type:varchar(256)" json:"journal,omitempty"`
	Volume    string  `gorm:"type:varchar(16)" json:"volume,omitempty"`
	PageStart string  `gorm:"type:varchar(16)" json:"page_start,omitempty"`
	PageEnd   string  `gorm:"type:varchar(16)" json:"page_end,omitempty"`
	Year      int     `json:"year,omitempty"`
	DOI       *string `gorm:"column:doi;type:varchar(128);uniqueIndex" json:"doi,omitempty"`
	Provenance
}

func (Ref) TableName() string { return "refs" }

// DataSet is data attached to a reaction: rate coefficients, cross
// sections and the like. Applications store their own data types by
// embedding ReactionDataSet.
type DataSet interface {
	QualifiedIDer
	Provenancer
	// DataSetReactionID is the ID of the reaction the data belong to.
	DataSetReactionID() int
}

// ReactionDataSet is the concrete DataSet keeping its data as JSON text.
type ReactionDataSet struct {
	ID         int      `gorm:"primaryKey" json:"id"`
	ReactionID int      `gorm:"not null;index" json:"reaction_id"`
	Reaction   Reaction `gorm:"constraint:OnDelete:CASCADE" json:"reaction"`
	Refs       []Ref    `gorm:"many2many:reaction_dataset_refs;joinForeignKey:DataSetID;joinReferences:RefID;constraint:OnDelete:CASCADE" json:"refs,omitempty"`
	Comment    string   `gorm:"type:text;not null" json:"comment"`

	// Payload holds JSON-encoded data.
	Payload string `gorm:"type:text" json:"payload,omitempty"`
	Provenance
}

func (ReactionDataSet) TableName() string { return "reaction_datasets" }

func (d ReactionDataSet) DataSetReactionID() int { return d.ReactionID }
