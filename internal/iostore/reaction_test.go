package iostore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/gnames/valemdb/pkg/valem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionAllMatching(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)
	reg := st.Reactions()

	rs, err := reg.AllMatching(ctx, "H + H + He -> H + H **;n=2 + He *;n=0", true)
	require.NoError(t, err)
	assert.Empty(t, rs)
	assert.Equal(t, 0, count(t, gdb, &schema.RP{}))

	_, _, err = reg.GetOrCreate(ctx, "H + H + He -> H + H **;n=2 + He *;n=0",
		registry.ReactionOptions{ProcessTypes: []string{"___"}})
	require.NoError(t, err)

	equivalent := []string{
		"2H + He -> H + H **;n=2 + He *;n=0",
		"H + H + He -> H + H **;n=2 + He *;n=0",
		"2H + He -> H + H n=2;** + He *;n=0",
		"2H + He -> H + H n=2;** + He n=0;*",
		"H + H + He -> H + H n=2;** + He n=0;*",
	}
	for _, v := range equivalent {
		rs, err := reg.AllMatching(ctx, v, true)
		require.NoError(t, err)
		assert.Len(t, rs, 1, v)
	}
	assert.Equal(t, 4, count(t, gdb, &schema.RP{}))
	assert.Equal(t, 2, count(t, gdb, &schema.Species{}))
}

func TestReactionCreateDuplicates(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)
	reg := st.Reactions()

	_, err := reg.Create(ctx, "He + H + H -> 2H + He *;n=2",
		registry.ReactionOptions{}, false)
	require.NoError(t, err)

	texts := []string{
		"He + 2H -> H + H + He *;n=2",
		"He + 2H -> 2H + He *;n=2",
		"He + 2H -> 2H + He n=2;*",
	}
	for _, v := range texts {
		_, err = reg.Create(ctx, v, registry.ReactionOptions{}, false)
		assert.True(t, registry.IsDuplicateReaction(err), v)
	}
	assert.Equal(t, 1, count(t, gdb, &schema.Reaction{}))

	for _, v := range texts {
		_, err = reg.Create(ctx, v, registry.ReactionOptions{}, true)
		require.NoError(t, err, v)
	}
	rs, err := reg.AllMatching(ctx, "He + 2H -> 2H + He n=2;*", true)
	require.NoError(t, err)
	assert.Len(t, rs, 4)
	assert.Equal(t, 4, count(t, gdb, &schema.Reaction{}))
}

func TestReactionCreateDuplicateComment(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)
	reg := st.Reactions()
	opts := registry.ReactionOptions{Comment: "foo"}

	r, err := reg.Create(ctx, "H + H -> H + H", opts, false)
	require.NoError(t, err)
	assert.Equal(t, "foo", r.Comment)
	assert.Equal(t, "H + H → H + H", r.Text)
	assert.Equal(t, fmt.Sprintf("<R%d: H + H → H + H>", r.ID), schema.Repr(r))

	_, err = reg.Create(ctx, "2H -> 2H", opts, false)
	assert.True(t, registry.IsDuplicateReaction(err))

	_, err = reg.Create(ctx, "2H -> 2H", opts, true)
	require.NoError(t, err)

	rs, err := reg.AllMatching(ctx, "H + H -> 2H", true)
	require.NoError(t, err)
	assert.Len(t, rs, 2)
	assert.Equal(t, 1, count(t, gdb, &schema.RP{}))
}

func TestReactionGetOrCreate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st, gdb := newStore(t)
	reg := st.Reactions()

	_, _, err := st.RPs().GetOrCreate(ctx, "He *;n=2")
	require.NoError(t, err)

	r, created, err := reg.GetOrCreate(ctx, "He n=2;* + 2H -> H + H + He n=2;*",
		registry.ReactionOptions{})
	require.NoError(t, err)
	assert.True(created)
	assert.Equal("He n=2;* + H + H → H + H + He n=2;*", r.Text)
	assert.Equal("H + H + He n=2;* → H + H + He n=2;*", r.OrderedText)
	assert.Len(r.Reactants, 3)
	assert.Len(r.Products, 3)
	assert.Equal("He n=2;*", r.Reactants[0].RP.Text)

	assert.Equal(2, count(t, gdb, &schema.RP{}))
	assert.Equal(2, count(t, gdb, &schema.State{}))
	assert.Equal(2, count(t, gdb, &schema.Species{}))
	assert.Equal(3, count(t, gdb, &schema.ReactantList{}))
	assert.Equal(3, count(t, gdb, &schema.ProductList{}))

	again, created, err := reg.GetOrCreate(ctx, "He *;n=2 + H + H -> 2H + He n=2;*",
		registry.ReactionOptions{})
	require.NoError(t, err)
	assert.False(created)
	assert.Equal(r.ID, again.ID)
	assert.Equal(1, count(t, gdb, &schema.Reaction{}))

	withComment, created, err := reg.GetOrCreate(ctx, r.Text,
		registry.ReactionOptions{Comment: "foo"})
	require.NoError(t, err)
	assert.True(created)
	assert.NotEqual(r.ID, withComment.ID)
}

func TestReactionMolecularity(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	r, err := st.Reactions().Create(ctx, "5H + 5e- -> H- + H- + 3H-",
		registry.ReactionOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Molecularity())

	m, err := st.Reactions().Molecularity(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, m)

	assert.Equal(t, 3, count(t, gdb, &schema.RP{}))
	assert.Equal(t, 0, count(t, gdb, &schema.State{}))
	assert.Equal(t, 3, count(t, gdb, &schema.Species{}))
	assert.Equal(t, 1, count(t, gdb, &schema.Reaction{}))

	_, err = st.Reactions().Molecularity(ctx, r.ID+100)
	assert.True(t, registry.IsNotFound(err))
}

func TestReactionProcessTypes(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	reg := st.Reactions()

	r, err := reg.Create(ctx, "H + H -> H + H",
		registry.ReactionOptions{ProcessTypes: []string{"___"}}, false)
	require.NoError(t, err)
	require.Len(t, r.ProcessTypes, 1)
	assert.Equal(t, "___", r.ProcessTypes[0].Abbreviation)

	tests := []struct {
		msg   string
		pts   []string
		found bool
	}{
		{"same set", []string{"___"}, true},
		{"repeated", []string{"___", "___"}, true},
		{"empty set", nil, false},
		{"superset", []string{"___", "HDS"}, false},
	}
	for _, v := range tests {
		got, err := reg.Get(ctx, "2H -> 2H",
			registry.ReactionOptions{ProcessTypes: v.pts})
		if !v.found {
			assert.True(t, registry.IsNotFound(err), v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, r.ID, got.ID, v.msg)
	}

	multi, _, err := reg.GetOrCreate(ctx, "H2 -> H + H",
		registry.ReactionOptions{ProcessTypes: []string{"HDS", "EEX", "HDS"}})
	require.NoError(t, err)
	require.Len(t, multi.ProcessTypes, 2)
	assert.Equal(t, "EEX", multi.ProcessTypes[0].Abbreviation)
	assert.Equal(t, "HDS", multi.ProcessTypes[1].Abbreviation)
}

func TestReactionUnknownProcessTypeRollsBack(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	_, _, err := st.Reactions().GetOrCreate(ctx, "e- + N2 -> e- + N2 v=1",
		registry.ReactionOptions{ProcessTypes: []string{"EXV", "ZZZ"}})
	assert.True(t, registry.IsProcessTypeNotFound(err))

	for _, v := range []any{
		&schema.Reaction{}, &schema.RP{}, &schema.Species{},
		&schema.State{}, &schema.ReactantList{},
	} {
		assert.Equal(t, 0, count(t, gdb, v))
	}
}

func TestReactionStrict(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	reg := st.Reactions()

	_, _, err := reg.GetOrCreate(ctx, "H -> H2", registry.ReactionOptions{})
	var be *valem.ReactionBalanceError
	assert.True(t, errors.As(err, &be))

	r, created, err := reg.GetOrCreate(ctx, "H -> H2",
		registry.ReactionOptions{NonStrict: true})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "H → H2", r.Text)

	_, err = reg.AllMatching(ctx, "H + -> H", false)
	var pe *valem.ReactionParseError
	assert.True(t, errors.As(err, &pe))
}

func TestReactionResetHTML(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)
	reg := st.Reactions()

	tests := []struct {
		text      string
		nonStrict bool
		html      string
	}{
		{"2H -> H2", false, "2H → H<sub>2</sub>"},
		{"H -> H2", true, "H → H<sub>2</sub>"},
	}
	for _, v := range tests {
		r, _, err := reg.GetOrCreate(ctx, v.text,
			registry.ReactionOptions{NonStrict: v.nonStrict})
		require.NoError(t, err)

		err = gdb.Model(&schema.Reaction{}).Where("id = ?", r.ID).
			Updates(map[string]any{"html": "stale", "latex": "stale"}).Error
		require.NoError(t, err)

		r.HTML = "stale"
		require.NoError(t, reg.ResetHTML(ctx, r))
		assert.Equal(t, v.html, r.HTML)

		var stored schema.Reaction
		require.NoError(t, gdb.First(&stored, r.ID).Error)
		assert.Equal(t, v.html, stored.HTML)
		assert.NotEqual(t, "stale", stored.LaTeX)
	}

	err := reg.ResetHTML(ctx, &schema.Reaction{ID: 999, Text: "H → H"})
	assert.True(t, registry.IsNotFound(err))
}

func TestReactionParticipants(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	r, err := st.Reactions().Create(ctx, "He + 2H -> H2 + He",
		registry.ReactionOptions{}, false)
	require.NoError(t, err)

	reactants, products, err := st.Reactions().Participants(ctx, r.ID)
	require.NoError(t, err)

	texts := func(rps []schema.RP) []string {
		res := make([]string, len(rps))
		for i, v := range rps {
			res[i] = v.Text
		}
		return res
	}
	assert.Equal(t, []string{"He", "H", "H"}, texts(reactants))
	assert.Equal(t, []string{"H2", "He"}, texts(products))
	assert.Equal(t, "He", reactants[0].Species.Text)

	_, _, err = st.Reactions().Participants(ctx, r.ID+1)
	assert.True(t, registry.IsNotFound(err))
}

func TestReactionByID(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	reg := st.Reactions()

	r, _, err := reg.GetOrCreate(ctx, "2H -> H2",
		registry.ReactionOptions{ProcessTypes: []string{"HDS", "EEX"}})
	require.NoError(t, err)

	got, err := reg.ByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "H + H → H2", got.Text)
	require.Len(t, got.ProcessTypes, 2)
	assert.Equal(t, "EEX", got.ProcessTypes[0].Abbreviation)
	assert.Len(t, got.Reactants, 2)
	assert.Len(t, got.Products, 1)

	_, err = reg.ByID(ctx, r.ID+100)
	assert.True(t, registry.IsNotFound(err))
}
