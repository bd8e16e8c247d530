// Package registry defines the contracts of the species, stateful
// species and reaction catalogues. Implementations live in
// internal/iostore.
//
// Every lookup canonicalizes its text input first, so differently written
// but equivalent texts find the same row. Get-or-create operations never
// produce a second row for the same canonical text.
package registry

import (
	"context"

	"github.com/gnames/valemdb/pkg/schema"
)

// SpeciesRegistry finds and creates species by formula.
type SpeciesRegistry interface {
	// Get returns the species with the canonical form of text.
	Get(ctx context.Context, text string) (*schema.Species, error)

	// GetOrCreate returns the species with the canonical form of text,
	// creating it if needed. The bool is true if the species was created.
	GetOrCreate(ctx context.Context, text string) (*schema.Species, bool, error)

	// Create inserts a species row as is.
	Create(ctx context.Context, species *schema.Species) error
}

// AliasIndex maps alternative names to species.
type AliasIndex interface {
	// Resolve returns the species that has the alias.
	Resolve(ctx context.Context, alias string) (*schema.Species, error)

	// AddAlias attaches an alias to a species. Alias texts are unique
	// across all species.
	AddAlias(ctx context.Context, speciesID int, alias string) (*schema.SpeciesAlias, error)

	// Aliases lists aliases of a species ordered by ID.
	Aliases(ctx context.Context, speciesID int) ([]schema.SpeciesAlias, error)
}

// RPRegistry finds and creates stateful species.
type RPRegistry interface {
	// Get returns the RP with exactly the states in text, written in any
	// order.
	Get(ctx context.Context, text string) (*schema.RP, error)

	// Filter returns RPs of the species in text that have at least the
	// states given in text, ordered by ID. With useAliasLookup an InChI
	// or InChIKey is accepted in place of the formula.
	Filter(ctx context.Context, text string, useAliasLookup bool) ([]schema.RP, error)

	// GetOrCreate returns the RP for text, creating it together with its
	// species and states if needed.
	GetOrCreate(ctx context.Context, text string) (*schema.RP, bool, error)

	// States returns the states of an RP.
	States(ctx context.Context, rpID int) ([]schema.State, error)
}

// ReactionOptions qualify a reaction lookup or creation.
type ReactionOptions struct {
	// Comment distinguishes otherwise identical reactions.
	Comment string

	// ProcessTypes are abbreviations of process types. Their order and
	// repetitions do not matter.
	ProcessTypes []string

	// NonStrict skips charge and atom balance checks.
	NonStrict bool
}

// ReactionRegistry finds and creates reactions.
type ReactionRegistry interface {
	// AllMatching returns all reactions with the canonical form of text,
	// regardless of comment and process types.
	AllMatching(ctx context.Context, text string, strict bool) ([]schema.Reaction, error)

	// Get returns the reaction with the canonical text, comment and set
	// of process types.
	Get(ctx context.Context, text string, opts ReactionOptions) (*schema.Reaction, error)

	// GetOrCreate returns the matching reaction, creating it and any
	// missing RPs if needed.
	GetOrCreate(ctx context.Context, text string, opts ReactionOptions) (*schema.Reaction, bool, error)

	// Create always attempts to create a reaction. If an equivalent
	// reaction exists it fails unless allowDuplicate is set.
	Create(ctx context.Context, text string, opts ReactionOptions, allowDuplicate bool) (*schema.Reaction, error)

	// Molecularity counts reactant units of a reaction.
	Molecularity(ctx context.Context, reactionID int) (int, error)

	// ResetHTML renders HTML and LaTeX of a reaction from its text again
	// and saves them.
	ResetHTML(ctx context.Context, reaction *schema.Reaction) error

	// Participants returns reactant and product RPs, one entry per unit.
	Participants(ctx context.Context, reactionID int) (reactants, products []schema.RP, err error)
}

// ProcessTypes manages the process type table.
type ProcessTypes interface {
	Create(ctx context.Context, pt *schema.ProcessType) error
	Get(ctx context.Context, abbreviation string) (*schema.ProcessType, error)
	All(ctx context.Context) ([]schema.ProcessType, error)

	// Seed inserts process types or updates them by abbreviation.
	Seed(ctx context.Context, pts []schema.ProcessType) error
}

// DataSets stores data attached to reactions.
type DataSets interface {
	// Create saves a dataset with its references. References with a DOI
	// that is already known are reused.
	Create(ctx context.Context, ds *schema.ReactionDataSet, refs ...schema.Ref) error
	Get(ctx context.Context, id int) (*schema.ReactionDataSet, error)
	AddRef(ctx context.Context, dataSetID int, ref schema.Ref) error
	// ForReaction lists datasets of a reaction ordered by ID.
	ForReaction(ctx context.Context, reactionID int) ([]schema.ReactionDataSet, error)
}

// Deleter removes rows together with everything depending on them.
type Deleter interface {
	// DeleteSpecies removes a species, its aliases, its RPs and their
	// states and reaction links.
	DeleteSpecies(ctx context.Context, id int) error
	// DeleteRP removes an RP, its states and its reaction links. The
	// species stays.
	DeleteRP(ctx context.Context, id int) error
	DeleteState(ctx context.Context, id int) error
	// DeleteReaction removes a reaction, its links and datasets.
	DeleteReaction(ctx context.Context, id int) error
}
