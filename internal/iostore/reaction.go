package iostore

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/gnames/valemdb/pkg/valem"
	"gorm.io/gorm"
)

// ReactionStore implements registry.ReactionRegistry.
type ReactionStore struct {
	s *Store
}

// AllMatching returns reactions with the canonical text regardless of
// their comments and process types.
func (rs *ReactionStore) AllMatching(
	ctx context.Context,
	text string,
	strict bool,
) ([]schema.Reaction, error) {
	r, err := rs.s.parser.Reaction(text, strict)
	if err != nil {
		return nil, err
	}
	var res []schema.Reaction
	err = rs.s.db.WithContext(ctx).
		Scopes(preloadReaction).
		Where("text = ?", r.Text).
		Order("id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("reactions", err)
	}
	return res, nil
}

// Get returns the reaction that matches text, comment and the set of
// process types.
func (rs *ReactionStore) Get(
	ctx context.Context,
	text string,
	opts registry.ReactionOptions,
) (*schema.Reaction, error) {
	r, err := rs.s.parser.Reaction(text, !opts.NonStrict)
	if err != nil {
		return nil, err
	}
	return findReaction(
		rs.s.db.WithContext(ctx), r.Text, opts.Comment,
		abbrSet(opts.ProcessTypes),
	)
}

// ByID returns a reaction with its process types.
func (rs *ReactionStore) ByID(
	ctx context.Context,
	id int,
) (*schema.Reaction, error) {
	var res schema.Reaction
	err := rs.s.db.WithContext(ctx).
		Scopes(preloadReaction).
		First(&res, id).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("reaction", strconv.Itoa(id))
	}
	if err != nil {
		return nil, QueryError("reactions", err)
	}
	return &res, nil
}

// GetOrCreate returns the matching reaction or creates it.
func (rs *ReactionStore) GetOrCreate(
	ctx context.Context,
	text string,
	opts registry.ReactionOptions,
) (*schema.Reaction, bool, error) {
	r, err := rs.s.parser.Reaction(text, !opts.NonStrict)
	if err != nil {
		return nil, false, err
	}
	abbrs := abbrSet(opts.ProcessTypes)

	unlock := rs.s.locks.Lock("reaction:" + r.Text)
	defer unlock()

	var res *schema.Reaction
	var created bool
	err = rs.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = findReaction(tx, r.Text, opts.Comment, abbrs)
		if err == nil || !isNotFound(err) {
			return err
		}
		res, err = rs.s.createReaction(tx, r, opts.Comment, abbrs)
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return res, created, nil
}

// Create creates a reaction. An equivalent existing reaction is an error
// unless allowDuplicate is true, then the duplicate is created with a
// warning.
func (rs *ReactionStore) Create(
	ctx context.Context,
	text string,
	opts registry.ReactionOptions,
	allowDuplicate bool,
) (*schema.Reaction, error) {
	r, err := rs.s.parser.Reaction(text, !opts.NonStrict)
	if err != nil {
		return nil, err
	}
	abbrs := abbrSet(opts.ProcessTypes)

	unlock := rs.s.locks.Lock("reaction:" + r.Text)
	defer unlock()

	var res *schema.Reaction
	err = rs.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findReaction(tx, r.Text, opts.Comment, abbrs)
		switch {
		case err == nil && !allowDuplicate:
			return DuplicateReactionError(r.Text, existing.ID)
		case err == nil:
			slog.Warn("Creating duplicate reaction",
				"text", r.Text, "existing", existing.QualifiedID())
		case !isNotFound(err):
			return err
		}
		res, err = rs.s.createReaction(tx, r, opts.Comment, abbrs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Molecularity counts reactant units, 2H counts as two.
func (rs *ReactionStore) Molecularity(
	ctx context.Context,
	reactionID int,
) (int, error) {
	tx := rs.s.db.WithContext(ctx)
	err := mustExist(tx, &schema.Reaction{}, "reaction", reactionID)
	if err != nil {
		return 0, err
	}
	var count int64
	err = tx.Model(&schema.ReactantList{}).
		Where("reaction_id = ?", reactionID).
		Count(&count).Error
	if err != nil {
		return 0, QueryError("reactants", err)
	}
	return int(count), nil
}

// ResetHTML renders HTML and LaTeX from the stored text. A reaction that
// does not balance is rendered without the balance check.
func (rs *ReactionStore) ResetHTML(
	ctx context.Context,
	reaction *schema.Reaction,
) error {
	r, err := rs.s.parser.Reaction(reaction.Text, true)
	if err != nil {
		r, err = rs.s.parser.Reaction(reaction.Text, false)
	}
	if err != nil {
		return err
	}

	tx := rs.s.db.WithContext(ctx)
	err = mustExist(tx, &schema.Reaction{}, "reaction", reaction.ID)
	if err != nil {
		return err
	}
	reaction.HTML, reaction.LaTeX = r.HTML, r.LaTeX
	err = tx.Model(&schema.Reaction{ID: reaction.ID}).
		Updates(map[string]any{"html": r.HTML, "latex": r.LaTeX}).Error
	if err != nil {
		return CreateError("reaction", reaction.Text, err)
	}
	return nil
}

// Participants returns reactant and product RPs with one entry per
// stoichiometric unit.
func (rs *ReactionStore) Participants(
	ctx context.Context,
	reactionID int,
) ([]schema.RP, []schema.RP, error) {
	tx := rs.s.db.WithContext(ctx)
	err := mustExist(tx, &schema.Reaction{}, "reaction", reactionID)
	if err != nil {
		return nil, nil, err
	}

	var rl []schema.ReactantList
	err = tx.Scopes(preloadParticipant).
		Where("reaction_id = ?", reactionID).
		Order("id").
		Find(&rl).Error
	if err != nil {
		return nil, nil, QueryError("reactants", err)
	}
	var pl []schema.ProductList
	err = tx.Scopes(preloadParticipant).
		Where("reaction_id = ?", reactionID).
		Order("id").
		Find(&pl).Error
	if err != nil {
		return nil, nil, QueryError("products", err)
	}

	reactants := make([]schema.RP, len(rl))
	for i, v := range rl {
		reactants[i] = v.RP
	}
	products := make([]schema.RP, len(pl))
	for i, v := range pl {
		products[i] = v.RP
	}
	return reactants, products, nil
}

// createReaction works inside the caller's transaction. Process types
// are checked before anything is written.
func (s *Store) createReaction(
	tx *gorm.DB,
	r *valem.Reaction,
	comment string,
	abbrs []string,
) (*schema.Reaction, error) {
	pts, err := findProcessTypes(tx, abbrs)
	if err != nil {
		return nil, err
	}

	canon, err := s.parser.Reaction(r.Text, false)
	if err != nil {
		return nil, err
	}

	reactantRPs, err := s.units(tx, canon.Reactants)
	if err != nil {
		return nil, err
	}
	productRPs, err := s.units(tx, canon.Products)
	if err != nil {
		return nil, err
	}
	reactants := make([]schema.ReactantList, len(reactantRPs))
	for i, v := range reactantRPs {
		reactants[i] = schema.ReactantList{RPID: v.ID}
	}
	products := make([]schema.ProductList, len(productRPs))
	for i, v := range productRPs {
		products[i] = schema.ProductList{RPID: v.ID}
	}

	res := &schema.Reaction{
		Text:         canon.Text,
		OrderedText:  valem.OrderedText(canon.Text),
		HTML:         canon.HTML,
		LaTeX:        canon.LaTeX,
		Comment:      comment,
		Reactants:    reactants,
		Products:     products,
		ProcessTypes: pts,
	}
	if err = tx.Omit("ProcessTypes.*").Create(res).Error; err != nil {
		return nil, CreateError("reaction", canon.Text, err)
	}

	for i := range res.Reactants {
		res.Reactants[i].RP = reactantRPs[i]
	}
	for i := range res.Products {
		res.Products[i].RP = productRPs[i]
	}
	return res, nil
}

// units materializes the RPs of one side of a reaction. A term with
// coefficient N gives N units.
func (s *Store) units(
	tx *gorm.DB,
	terms []valem.Term,
) ([]schema.RP, error) {
	var res []schema.RP
	for _, v := range terms {
		rp, _, err := s.getOrCreateRP(tx, v.Species)
		if err != nil {
			return nil, err
		}
		for range v.Count {
			res = append(res, *rp)
		}
	}
	return res, nil
}

func findReaction(
	tx *gorm.DB,
	text, comment string,
	abbrs []string,
) (*schema.Reaction, error) {
	var candidates []schema.Reaction
	err := tx.Preload("ProcessTypes").
		Where("text = ? AND comment = ?", text, comment).
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return nil, QueryError("reactions", err)
	}
	for _, v := range candidates {
		if !slices.Equal(ptAbbrs(v.ProcessTypes), abbrs) {
			continue
		}
		var res schema.Reaction
		err = tx.Scopes(preloadReaction).First(&res, v.ID).Error
		if err != nil {
			return nil, QueryError("reactions", err)
		}
		return &res, nil
	}
	return nil, NotFoundError("reaction", text)
}

func preloadReaction(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Reactants", orderByID).
		Preload("Reactants.RP").
		Preload("Products", orderByID).
		Preload("Products.RP").
		Preload("ProcessTypes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("abbreviation")
		})
}

func preloadParticipant(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("RP.Species").
		Preload("RP.States", orderByID)
}

// abbrSet returns sorted abbreviations without blanks and repetitions.
func abbrSet(abbrs []string) []string {
	res := make([]string, 0, len(abbrs))
	for _, v := range abbrs {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}

func ptAbbrs(pts []schema.ProcessType) []string {
	res := make([]string, len(pts))
	for i, v := range pts {
		res[i] = v.Abbreviation
	}
	slices.Sort(res)
	return res
}
