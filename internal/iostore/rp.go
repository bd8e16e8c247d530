package iostore

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/valemdb/pkg/schema"
	"github.com/gnames/valemdb/pkg/valem"
	"gorm.io/gorm"
)

var inchiKeyRe = regexp.MustCompile(`^[A-Z]{14}-[A-Z]{10}-N$`)

// RPStore implements registry.RPRegistry.
type RPStore struct {
	s *Store
}

// Get finds the RP with exactly the given states. States may be written
// in any order.
func (rs *RPStore) Get(ctx context.Context, text string) (*schema.RP, error) {
	ss, err := rs.s.parser.StatefulSpecies(text)
	if err != nil {
		return nil, err
	}
	return findRP(rs.s.db.WithContext(ctx), ss.Text)
}

// Filter returns all RPs of a species that carry at least the given
// states.
func (rs *RPStore) Filter(
	ctx context.Context,
	text string,
	useAliasLookup bool,
) ([]schema.RP, error) {
	speciesPart, statesPart := splitSpecies(text)
	states, err := rs.canonicalStates(statesPart)
	if err != nil {
		return nil, err
	}

	tx := rs.s.db.WithContext(ctx)
	sp, err := rs.filterSpecies(tx, speciesPart, useAliasLookup)
	if isNotFound(err) {
		return []schema.RP{}, nil
	}
	if err != nil {
		return nil, err
	}

	q := tx.Model(&schema.RP{}).Where("species_id = ?", sp.ID)
	for _, v := range states {
		q = q.Where(`EXISTS (SELECT 1 FROM states
			WHERE states.rp_id = rps.id AND states.text = ?)`, v)
	}
	var res []schema.RP
	err = q.Preload("Species").
		Preload("States", orderByID).
		Order("rps.id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("rps", err)
	}
	return res, nil
}

// GetOrCreate finds an RP or creates it together with its species and
// states. Nothing is written if any part fails.
func (rs *RPStore) GetOrCreate(
	ctx context.Context,
	text string,
) (*schema.RP, bool, error) {
	ss, err := rs.s.parser.StatefulSpecies(text)
	if err != nil {
		return nil, false, err
	}

	unlock := rs.s.locks.Lock("rp:" + ss.Text)
	defer unlock()

	var res *schema.RP
	var created bool
	err = rs.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, created, err = rs.s.getOrCreateRP(tx, ss)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return res, created, nil
}

// States returns the states of an RP ordered by ID.
func (rs *RPStore) States(
	ctx context.Context,
	rpID int,
) ([]schema.State, error) {
	var res []schema.State
	err := rs.s.db.WithContext(ctx).
		Where("rp_id = ?", rpID).
		Order("id").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("states", err)
	}
	return res, nil
}

func (rs *RPStore) canonicalStates(text string) ([]string, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == ',' || unicode.IsSpace(r)
	})
	res := make([]string, 0, len(tokens))
	for _, v := range tokens {
		st, err := rs.s.parser.State(v)
		if err != nil {
			return nil, err
		}
		res = append(res, st.Text)
	}
	return res, nil
}

// filterSpecies resolves the species part of a filter query. An InChI
// or InChIKey goes to the alias index only. Anything else is tried as an
// alias, then as a formula, then as literal species text.
func (rs *RPStore) filterSpecies(
	tx *gorm.DB,
	part string,
	useAliasLookup bool,
) (*schema.Species, error) {
	if useAliasLookup && isAliasLike(part) {
		return resolveAlias(tx, part)
	}

	sp, err := resolveAlias(tx, part)
	if !isNotFound(err) {
		return sp, err
	}

	text := part
	if f, err := rs.s.parser.Formula(part); err == nil {
		text = f.Text
	}
	return findSpecies(tx, text)
}

func findRP(tx *gorm.DB, canonical string) (*schema.RP, error) {
	var res schema.RP
	err := tx.Preload("Species").
		Preload("States", orderByID).
		Where("uuid = ?", schema.ContentKey(canonical)).
		First(&res).Error
	if isRecordNotFound(err) {
		return nil, NotFoundError("rp", canonical)
	}
	if err != nil {
		return nil, QueryError("rps", err)
	}
	return &res, nil
}

// getOrCreateRP works inside the caller's transaction.
func (s *Store) getOrCreateRP(
	tx *gorm.DB,
	ss *valem.StatefulSpecies,
) (*schema.RP, bool, error) {
	res, err := findRP(tx, ss.Text)
	if err == nil {
		return res, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	sp, _, err := s.getOrCreateSpecies(tx, ss.Formula)
	if err != nil {
		return nil, false, err
	}

	canon, err := s.parser.StatefulSpecies(ss.Text)
	if err != nil {
		return nil, false, err
	}
	states := make([]schema.State, len(canon.States))
	for i, v := range canon.States {
		st, err := schema.StateTypeFromName(v.Kind.String())
		if err != nil {
			return nil, false, CreateError("state", v.Text, err)
		}
		states[i] = schema.State{StateType: st, Text: v.Text, HTML: v.HTML}
	}

	res = &schema.RP{
		SpeciesID: sp.ID,
		Text:      canon.Text,
		HTML:      canon.HTML,
		States:    states,
	}
	created, err := insert(tx,
		func(stx *gorm.DB) error { return stx.Omit("Species").Create(res).Error },
		func(tx *gorm.DB) error {
			rp, err := findRP(tx, canon.Text)
			if err != nil {
				return err
			}
			res = rp
			return nil
		},
	)
	if err != nil {
		return nil, false, CreateError("rp", canon.Text, err)
	}
	if created {
		res.Species = *sp
	}
	return res, created, nil
}

func splitSpecies(text string) (string, string) {
	s := strings.TrimSpace(text)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func isAliasLike(s string) bool {
	return strings.HasPrefix(s, "InChI=") ||
		strings.HasPrefix(s, "1S/") ||
		inchiKeyRe.MatchString(s)
}

func orderByID(tx *gorm.DB) *gorm.DB {
	return tx.Order("id")
}
